package responses

type ProcessResponse struct {
	ProcessId      int `json:"process_id"`
	ArrivalTime    int `json:"arrival_time"`
	BurstTime      int `json:"burst_time"`
	Priority       int `json:"priority"`
	StartTime      int `json:"start_time"`
	CompletionTime int `json:"completion_time"`
	ResponseTime   int `json:"response_time"`
	TurnAroundTime int `json:"turn_around_time"`
	WaitingTime    int `json:"waiting_time"`
}

type IntervalResponse struct {
	ProcessId int `json:"process_id"`
	Start     int `json:"start"`
	End       int `json:"end"`
}

type ScheduleResponse struct {
	Algorithm             string             `json:"algorithm"`
	AlgorithmName         string             `json:"algorithm_name"`
	TimeQuantum           int                `json:"time_quantum,omitempty"`
	TotalTime             int                `json:"total_time"`
	IdleTime              int                `json:"idle_time"`
	AverageWaitingTime    float64            `json:"average_waiting_time"`
	AverageResponseTime   float64            `json:"average_response_time"`
	AverageTurnAroundTime float64            `json:"average_turn_around_time"`
	CpuUtilization        float64            `json:"cpu_utilization"`
	CpuThroughput         float64            `json:"cpu_throughput"`
	ContextSwitches       int                `json:"context_switches"`
	Timeline              []IntervalResponse `json:"timeline"`
	Details               []ProcessResponse  `json:"details"`
}

type PolicySummary struct {
	Algorithm             string  `json:"algorithm"`
	AlgorithmName         string  `json:"algorithm_name"`
	AverageWaitingTime    float64 `json:"average_waiting_time"`
	AverageResponseTime   float64 `json:"average_response_time"`
	AverageTurnAroundTime float64 `json:"average_turn_around_time"`
}

type ComparisonResponse struct {
	TimeQuantum int                `json:"time_quantum"`
	Summary     []PolicySummary    `json:"summary"`
	Results     []ScheduleResponse `json:"results"`
	Advice      []string           `json:"advice"`
}
