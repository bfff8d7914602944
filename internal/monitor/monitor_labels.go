package monitor

type HTTPRequestLabels struct {
	Status string
	Route  string
	Method string
}

type RemoteAPILabels struct {
	Method     string
	Endpoint   string
	Status     string
	StatusCode string
}

func (r RemoteAPILabels) ToMap() map[string]string {
	return map[string]string{
		"method":      r.Method,
		"endpoint":    r.Endpoint,
		"status":      r.Status,
		"status_code": r.StatusCode,
	}
}

var RemoteAPILabelNames = []string{"method", "endpoint", "status", "status_code"}

type SubmissionLabels struct {
	Type   string
	Result string
}

func (s SubmissionLabels) ToMap() map[string]string {
	return map[string]string{
		"type":   s.Type,
		"result": s.Result,
	}
}

type ChannelResolutionLabels struct {
	Carrier string
	Channel string
}

func (c ChannelResolutionLabels) ToMap() map[string]string {
	return map[string]string{
		"carrier": c.Carrier,
		"channel": c.Channel,
	}
}

type SideEffectLabels struct {
	Effect string
}

func (s SideEffectLabels) ToMap() map[string]string {
	return map[string]string{
		"effect": s.Effect,
	}
}

type SessionLabels struct {
	Type     string
	FrontEnd string
}

func (s SessionLabels) ToMap() map[string]string {
	return map[string]string{
		"type":      s.Type,
		"front_end": s.FrontEnd,
	}
}
