package translator

import "strings"

var languageNames = map[string]string{
	"ar":    "Arabic",
	"bn":    "Bengali",
	"cs":    "Czech",
	"da":    "Danish",
	"de":    "German",
	"el":    "Greek",
	"en":    "English",
	"es":    "Spanish",
	"fa":    "Persian",
	"fi":    "Finnish",
	"fr":    "French",
	"he":    "Hebrew",
	"hi":    "Hindi",
	"hu":    "Hungarian",
	"id":    "Indonesian",
	"it":    "Italian",
	"ja":    "Japanese",
	"ko":    "Korean",
	"ms":    "Malay",
	"nb":    "Norwegian Bokmål",
	"nl":    "Dutch",
	"pl":    "Polish",
	"pt":    "Portuguese",
	"pt-br": "Brazilian Portuguese",
	"ro":    "Romanian",
	"ru":    "Russian",
	"sv":    "Swedish",
	"ta":    "Tamil",
	"th":    "Thai",
	"tr":    "Turkish",
	"uk":    "Ukrainian",
	"vi":    "Vietnamese",
	"zh":    "Chinese",
	"zh-cn": "Simplified Chinese",
	"zh-tw": "Traditional Chinese",
}

// LanguageName returns a human readable name for a language code.
// Unknown codes are returned unchanged so the model still sees the caller's intent.
func LanguageName(code string) string {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(code), "_", "-"))
	if name, ok := languageNames[key]; ok {
		return name
	}
	if base, _, found := strings.Cut(key, "-"); found {
		if name, ok := languageNames[base]; ok {
			return name
		}
	}
	return code
}
