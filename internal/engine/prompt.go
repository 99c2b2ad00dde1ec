package engine

import (
	"fmt"
	"sort"
)

// targetLanguages maps supported target tags to the language name used in
// the instruction turn.
var targetLanguages = map[string]string{
	"en": "English",
	"uk": "Ukrainian",
}

// BuildPrompt formats text into the fixed two-turn template the models were
// tuned on: a user turn with the translation instruction followed by a bare
// assistant-turn opener for the model to continue.
//
// The raw text is not escaped, so input containing the <|im_start|> or
// <|im_end|> delimiters can break out of the user turn.
func BuildPrompt(text, targetLang string) (string, error) {
	name, ok := targetLanguages[targetLang]
	if !ok {
		return "", unsupportedLanguageError{lang: targetLang}
	}
	return fmt.Sprintf("<|im_start|>user\nTranslate the text to %s:\n%s<|im_end|>\n<|im_start|>assistant", name, text), nil
}

// SupportedLanguages lists the target tags BuildPrompt accepts, sorted.
func SupportedLanguages() []string {
	out := make([]string, 0, len(targetLanguages))
	for tag := range targetLanguages {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}
