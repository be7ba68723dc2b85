package ollama

// Config contains local backend settings. The base URL points at a locally
// running Ollama instance by default.
type Config struct {
	BaseURL string `env:"OLLAMA_URL"     envDefault:"http://localhost:11434"`
	Timeout int    `env:"OLLAMA_TIMEOUT" envDefault:"30"`
}
