package booking

// AddOnSelection picks a catalog item and quantity for a booking.
type AddOnSelection struct {
	AddOnID  int64 `json:"add_on_id" binding:"required"`
	Quantity int   `json:"quantity" binding:"required,gte=1"`
}

type CreateEventRequest struct {
	EventDate string `json:"event_date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`

	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerEmail string `json:"customer_email" binding:"required,email"`
	CustomerPhone string `json:"customer_phone"`

	EventType       string `json:"event_type"`
	GuestCount      int    `json:"guest_count" binding:"gte=0"`
	TablesRequested int    `json:"tables_requested" binding:"gte=0"`
	ChairsRequested int    `json:"chairs_requested" binding:"gte=0"`
	SetupNotes      string `json:"setup_notes"`
	ExtraSetupHours int    `json:"extra_setup_hours"`

	AddOns []AddOnSelection `json:"add_ons"`
}

type CreateShowingRequest struct {
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`

	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerEmail string `json:"customer_email" binding:"required,email"`
	CustomerPhone string `json:"customer_phone"`
}

// EventPatch is an explicit partial update: nil means "leave unchanged".
// A non-nil field always wins over the stored value.
type EventPatch struct {
	EventDate *string `json:"event_date"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
	Status    *string `json:"status"`

	CustomerName  *string `json:"customer_name"`
	CustomerEmail *string `json:"customer_email"`
	CustomerPhone *string `json:"customer_phone"`

	EventType       *string `json:"event_type"`
	GuestCount      *int    `json:"guest_count"`
	TablesRequested *int    `json:"tables_requested"`
	ChairsRequested *int    `json:"chairs_requested"`
	SetupNotes      *string `json:"setup_notes"`
	ExtraSetupHours *int    `json:"extra_setup_hours"`

	AddOns *[]AddOnSelection `json:"add_ons"`
}

type TransitionRequest struct {
	Status string `json:"status" binding:"required"`
}
