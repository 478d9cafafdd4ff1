package service

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"clipmaster/internal/types"
	"clipmaster/log"
	"clipmaster/pkg/util"
)

const titlePrompt = `You are a short-form video editor. Given the transcript of a clip,
write a catchy title (max 60 characters) and a one-sentence summary.
Respond with JSON only, in the form {"title": "...", "summary": "..."}.

Transcript:
%s`

type titleResult struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

// titleClips asks the LLM for a title and summary per clip. Failures leave
// the clip untitled, titling never fails the detection run.
func (s *Service) titleClips(clips []types.ScoredClip) {
	for i := range clips {
		resp, err := s.ChatCompleter.ChatCompletion(fmt.Sprintf(titlePrompt, clips[i].Text))
		if err != nil {
			log.GetLogger().Warn("clip titling failed", zap.Int("rank", i+1), zap.Error(err))
			continue
		}

		var result titleResult
		if err := json.Unmarshal([]byte(util.ExtractJsonFromText(resp)), &result); err != nil {
			log.GetLogger().Warn("clip title response was not valid JSON", zap.Int("rank", i+1), zap.Error(err))
			continue
		}
		clips[i].Title = result.Title
		clips[i].Summary = result.Summary
	}
}
