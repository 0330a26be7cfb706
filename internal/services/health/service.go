package health

// Status is the body served by the health route.
type Status struct {
	Status string `json:"status"`
}

// Service reports liveness of the web app. The scoring service is not probed.
type Service struct{}

// NewService constructs a new health service.
func NewService() *Service {
	return &Service{}
}

// Status returns the health payload.
func (s *Service) Status() Status {
	return Status{Status: "ok"}
}
