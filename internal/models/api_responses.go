package models

// ProbeResponse is the JSON body of the liveness and readiness probes.
type ProbeResponse struct {
	Status string        `json:"status"`
	Error  string        `json:"error,omitempty"`
	Engine *EngineStatus `json:"engine,omitempty"`
}
