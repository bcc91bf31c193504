package entity

type GeminiProxyRequest struct {
	Prompt string `json:"prompt"`
}

type GeminiProxyResponse struct {
	Result string `json:"result"`
}

type GenerateQuestionRequest struct {
	Topic      string `json:"topic"`
	Difficulty string `json:"difficulty"`
}

type GenerateQuestionResponse struct {
	Question string `json:"question"`
}

type EvaluateAnswerRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type EvaluateAnswerResponse struct {
	Evaluation string `json:"evaluation"`
}

type ASRTranscribeResponse struct {
	Transcription string `json:"transcription"`
}
