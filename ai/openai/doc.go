// Package openai implements ai.EmbeddingProvider against OpenAI-compatible
// embedding APIs (OpenAI, Ollama, LocalAI, vLLM).
//
// Outbound requests are rate-limited with a fixed requests-per-minute window;
// callers over the cap wait for the window to reset instead of failing.
package openai
