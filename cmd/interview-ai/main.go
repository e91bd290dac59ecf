package main

import (
	"interview-ai/cmd/interview-ai/cmd"

	// Register STT and LLM providers
	_ "interview-ai/internal/app/api/gemini"
	_ "interview-ai/internal/app/api/huggingface"
	_ "interview-ai/internal/app/api/openai/chat"
	_ "interview-ai/internal/app/api/openai/whisper"
	_ "interview-ai/internal/app/api/whisper_server"
)

// @title           Interview AI API
// @version         1.0
// @description     Speech-to-text and answer feedback for mock interview recordings.
// @description     All v1 routes are also served under /ai/v1.

// @contact.name   Interview AI
// @license.name  MIT

// @host      localhost:8000
// @BasePath  /api/v1

// @schemes http https
func main() {
	cmd.Execute()
}
