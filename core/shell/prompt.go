package shell

import "strings"

// Prompt renders the prompt for the current working directory. `\w` in the
// configured prompt is replaced by the directory; if it can't be determined
// the fallback prompt is used as is.
func (s *Shell) Prompt() string {
	wd, err := s.Getwd()
	if err != nil {
		return s.Config.FallbackPrompt
	}
	return strings.ReplaceAll(s.Config.Prompt, `\w`, wd)
}
