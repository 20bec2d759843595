package health

type Input struct{}

type Output struct {
	Body Response
}

type Response struct {
	Status   string `json:"status" example:"OK" doc:"Health status of the service"`
	Sessions int    `json:"sessions" doc:"Live sessions"`
	Uptime   string `json:"uptime" example:"1h2m3s"`
}
