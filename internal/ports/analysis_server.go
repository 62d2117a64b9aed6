package ports

// AnalysisServer defines the interface for serving analysis requests.
type AnalysisServer interface {
	// Start starts the analysis server
	Start() error

	// Stop stops the analysis server
	Stop() error
}
