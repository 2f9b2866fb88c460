package envvar

const (
	// SamplegenEnv is the environment variable used to determine the environment
	SamplegenEnv = "SAMPLEGEN_ENV"

	// SamplegenModelsPath is the environment variable used to override the models directory
	SamplegenModelsPath = "SAMPLEGEN_MODELS_PATH"

	// SamplegenLogLevel is the environment variable used to override the log level
	SamplegenLogLevel = "SAMPLEGEN_LOG_LEVEL"

	// HFToken is the environment variable holding the Hugging Face access token
	HFToken = "HF_TOKEN"
)
