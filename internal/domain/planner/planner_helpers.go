package planner

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/goccy/go-json"
	"google.golang.org/genai"

	"github.com/FACorreiaa/roammate-api/internal/types"
)

var trailingCommaRe = regexp.MustCompile(`,(\s*[}\]])`)

// responseText returns the concatenated text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	return strings.TrimSpace(resp.Text())
}

// CleanJSONResponse strips markdown fences and any prose around the outermost
// JSON object or array, then removes trailing commas. JSON mode responses are
// normally clean already; this only guards against fenced output.
func CleanJSONResponse(response string) string {
	response = strings.TrimSpace(response)

	if strings.HasPrefix(response, "```json") {
		response = strings.TrimPrefix(response, "```json")
	} else if strings.HasPrefix(response, "```") {
		response = strings.TrimPrefix(response, "```")
	}
	response = strings.TrimSuffix(response, "```")
	response = strings.TrimSpace(response)

	start := strings.IndexAny(response, "{[")
	if start == -1 {
		return response
	}
	open, closing := response[start], byte('}')
	if open == '[' {
		closing = ']'
	}

	// Find the matching close, skipping brackets inside string literals.
	depth, end := 0, -1
	inString, escaped := false, false
scan:
	for i := start; i < len(response); i++ {
		c := response[i]
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == open:
			depth++
		case c == closing:
			depth--
			if depth == 0 {
				end = i
				break scan
			}
		}
	}
	if end == -1 {
		end = strings.LastIndexByte(response, closing)
		if end <= start {
			return response
		}
	}

	return trailingCommaRe.ReplaceAllString(response[start:end+1], "$1")
}

// decodeResponse parses the model text into v.
func decodeResponse(text string, v any) error {
	if text == "" {
		return types.ErrEmptyResponse
	}
	if err := json.Unmarshal([]byte(CleanJSONResponse(text)), v); err != nil {
		return fmt.Errorf("%w: %v", types.ErrMalformedResponse, err)
	}
	return nil
}

// toHistory maps the transcript into chat history contents, one text part per turn.
func toHistory(messages []types.ChatMessage) []*genai.Content {
	history := make([]*genai.Content, 0, len(messages))
	for _, m := range messages {
		role := genai.Role(genai.RoleUser)
		if m.Role == types.RoleModel {
			role = genai.RoleModel
		}
		history = append(history, genai.NewContentFromText(m.Text, role))
	}
	return history
}
