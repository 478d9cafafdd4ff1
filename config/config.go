package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"

	"clipmaster/internal/appdirs"
	"clipmaster/log"
)

type Server struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

type App struct {
	Proxy string `toml:"proxy"`
}

// Detect holds the default knobs for clip candidate detection. Request
// parameters override these per call.
type Detect struct {
	TargetDuration   float64 `toml:"target_duration"`
	MinDuration      float64 `toml:"min_duration"`
	MaxDuration      float64 `toml:"max_duration"`
	MaxClips         int     `toml:"max_clips"`
	FeatureWorkers   int     `toml:"feature_workers"`
	DedupeClips      bool    `toml:"dedupe_clips"`
	DedupeSimilarity float64 `toml:"dedupe_similarity"`
	TitleClips       bool    `toml:"title_clips"`
}

// Reframe holds face-aware reframing settings.
type Reframe struct {
	SampleRate          int    `toml:"sample_rate"`
	FaceTrackingEnabled bool   `toml:"face_tracking_enabled"`
	FfmpegPath          string `toml:"ffmpeg_path"`
	FfprobePath         string `toml:"ffprobe_path"`
}

// Endpoint describes a remote inference endpoint (classifier or detector).
// An empty BaseUrl means the capability is unavailable for this run.
type Endpoint struct {
	BaseUrl        string `toml:"base_url"`
	ApiKey         string `toml:"api_key"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

type Llm struct {
	BaseUrl string `toml:"base_url"`
	ApiKey  string `toml:"api_key"`
	Model   string `toml:"model"`
}

type Queue struct {
	Enabled       bool   `toml:"enabled"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	Concurrency   int    `toml:"concurrency"`
}

type Config struct {
	Server     Server   `toml:"server"`
	App        App      `toml:"app"`
	Detect     Detect   `toml:"detect"`
	Reframe    Reframe  `toml:"reframe"`
	Sentiment  Endpoint `toml:"sentiment"`
	Emotion    Endpoint `toml:"emotion"`
	Linguistic Endpoint `toml:"linguistic"`
	FaceDetect Endpoint `toml:"facedetect"`
	Llm        Llm      `toml:"llm"`
	Queue      Queue    `toml:"queue"`
}

var Conf Config

var resolveConfigPath = func() (string, error) {
	dirs, err := appdirs.Resolve()
	if err != nil {
		return "", err
	}
	return dirs.ConfigFile, nil
}

func ResolveConfigPath() (string, error) {
	return resolveConfigPath()
}

func defaultConfig() Config {
	return Config{
		Server: Server{
			Host: "127.0.0.1",
			Port: 8888,
		},
		Detect: Detect{
			TargetDuration:   60,
			MinDuration:      30,
			MaxDuration:      90,
			MaxClips:         5,
			FeatureWorkers:   4,
			DedupeClips:      false,
			DedupeSimilarity: 0.85,
			TitleClips:       false,
		},
		Reframe: Reframe{
			SampleRate:          10,
			FaceTrackingEnabled: true,
		},
		Sentiment:  Endpoint{TimeoutSeconds: 30},
		Emotion:    Endpoint{TimeoutSeconds: 30},
		Linguistic: Endpoint{TimeoutSeconds: 30},
		FaceDetect: Endpoint{TimeoutSeconds: 30},
		Queue: Queue{
			RedisAddr:   "localhost:6379",
			Concurrency: 3,
		},
	}
}

// LoadOrCreateConfig loads the config file, writing the defaults first when
// the file does not exist yet. Returns created=true if a new file was written.
func LoadOrCreateConfig() (bool, error) {
	configPath, err := resolveConfigPath()
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		Conf = defaultConfig()
		if err := SaveConfig(); err != nil {
			return false, fmt.Errorf("failed to write default config: %w", err)
		}
		return true, nil
	}

	if _, err := toml.DecodeFile(configPath, &Conf); err != nil {
		return false, fmt.Errorf("failed to decode config file %s: %w", configPath, err)
	}
	return false, nil
}

// LoadConfig is the boot-time wrapper around LoadOrCreateConfig.
func LoadConfig() bool {
	created, err := LoadOrCreateConfig()
	if err != nil {
		if log.GetLogger() != nil {
			log.GetLogger().Error("failed to load config", zap.Error(err))
		}
		return false
	}
	if created {
		path, _ := ResolveConfigPath()
		log.GetLogger().Info("default config created", zap.String("path", path))
	}
	return true
}

// SaveConfig writes the current Conf to the resolved config path.
func SaveConfig() error {
	configPath, err := resolveConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	file, err := os.Create(configPath)
	if err != nil {
		return err
	}
	defer file.Close()

	return toml.NewEncoder(file).Encode(Conf)
}

// CheckConfig validates the loaded configuration before the server starts.
func CheckConfig() error {
	d := Conf.Detect
	if d.MinDuration <= 0 {
		return fmt.Errorf("detect.min_duration must be positive, got %v", d.MinDuration)
	}
	if d.MinDuration > d.TargetDuration || d.TargetDuration > d.MaxDuration {
		return fmt.Errorf("detect durations must satisfy min <= target <= max, got min=%v target=%v max=%v",
			d.MinDuration, d.TargetDuration, d.MaxDuration)
	}
	if d.MaxClips <= 0 {
		return fmt.Errorf("detect.max_clips must be positive, got %d", d.MaxClips)
	}
	if Conf.Reframe.SampleRate <= 0 {
		return fmt.Errorf("reframe.sample_rate must be positive, got %d", Conf.Reframe.SampleRate)
	}
	if strings.TrimSpace(Conf.Server.Host) == "" {
		return fmt.Errorf("server.host must not be empty")
	}
	return nil
}
