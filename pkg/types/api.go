package types

// TranslateRequest is the payload accepted by POST /translate.
type TranslateRequest struct {
	// Text to translate. Required.
	// example: Привіт світ
	Text string `json:"text" example:"Привіт світ"`
	// Source language tag.
	// example: uk
	SourceLang string `json:"source_lang" example:"uk"`
	// Target language tag.
	// example: en
	TargetLang string `json:"target_lang" example:"en"`
}

// TranslateResponse is returned by POST /translate on success.
type TranslateResponse struct {
	// Translated text with leading/trailing whitespace trimmed.
	// example: Hello world
	TranslatedText string `json:"translated_text" example:"Hello world"`
	// Echo of the requested source language.
	// example: uk
	SourceLang string `json:"source_lang" example:"uk"`
	// Echo of the requested target language.
	// example: en
	TargetLang string `json:"target_lang" example:"en"`
}

// DirectionInfo describes one configured translation direction.
type DirectionInfo struct {
	// Source language tag.
	// example: uk
	Source string `json:"source" example:"uk"`
	// Target language tag.
	// example: en
	Target string `json:"target" example:"en"`
	// Identifier of the model serving this direction (file name).
	// example: gemma-2-9b-uk-en-q4_k_m.gguf
	Model string `json:"model" example:"gemma-2-9b-uk-en-q4_k_m.gguf"`
}

// DirectionsResponse wraps the list returned by GET /directions.
type DirectionsResponse struct {
	Directions []DirectionInfo `json:"directions"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: unsupported direction: fr -> en
	Error string `json:"error" example:"unsupported direction: fr -> en"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}
