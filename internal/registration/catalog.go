package registration

// Event is an event attendees can register for.
type Event struct {
	ID   string
	Name string
}

// Group is an option of the group selector.
type Group struct {
	Value string
	Label string
}

// Events lists the events open for registration.
var Events = []Event{
	{ID: "008608d9-a8c1-46e3-b3c5-d53d527c9e65", Name: "Hackathon Frontend"},
}

// Groups lists the selectable groups.
var Groups = []Group{
	{Value: "101", Label: "101"},
	{Value: "102", Label: "102"},
	{Value: "301", Label: "301"},
	{Value: "302", Label: "302"},
	{Value: "501", Label: "501"},
	{Value: "502", Label: "502"},
	{Value: "701", Label: "701"},
	{Value: "702", Label: "702"},
	{Value: "external", Label: "Externo"},
}

// EventName returns the display name of the event with id, or id itself.
func EventName(id string) string {
	for _, e := range Events {
		if e.ID == id {
			return e.Name
		}
	}
	return id
}
