package responses

// RegisteredProcess is a registry entry as exposed by the API.
type RegisteredProcess struct {
	ProcessId      int  `json:"process_id"`
	ArrivalTime    int  `json:"arrival_time"`
	BurstTime      int  `json:"burst_time"`
	Priority       int  `json:"priority"`
	RemainingTime  int  `json:"remaining_time"`
	Completed      bool `json:"completed"`
	CompletionTime int  `json:"completion_time"`
	WaitingTime    int  `json:"waiting_time"`
	TurnAroundTime int  `json:"turn_around_time"`
}

type RegistryResponse struct {
	Capacity  int                 `json:"capacity"`
	Processes []RegisteredProcess `json:"processes"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
