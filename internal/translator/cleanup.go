package translator

import "strings"

// cleanOutput normalizes decoded model text before it is returned:
// residual frame tokens from backends that decode server-side are
// removed and whitespace runs collapse to single spaces.
func cleanOutput(text string) string {
	for _, token := range []string{
		"<s>",
		"</s>",
		"<pad>",
		"<unk>",
	} {
		text = strings.ReplaceAll(text, token, "")
	}
	return strings.Join(strings.Fields(text), " ")
}
