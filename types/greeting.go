package types

import "time"

// Greeting sources, matching how the name reached the service.
const (
	GreetingSourceQuery = "query"
	GreetingSourceParam = "param"
	GreetingSourceBody  = "body"
)

// Greeting records one greeting request.
type Greeting struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}
