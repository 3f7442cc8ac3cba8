package dto

import "hos-log-service/internal/domain"

type CreateTripRequest struct {
	Name     string `json:"name"`
	DepartAt string `json:"departAt"`
	Stops    []Stop `json:"stops"`
}

type TripResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	DepartAt  string `json:"departAt,omitempty"`
	CreatedAt string `json:"createdAt"`
	Stops     []Stop `json:"stops"`
}

type ListTripsResponse struct {
	Trips []TripResponse `json:"trips"`
}

type TripDaysResponse struct {
	TripID  string              `json:"tripId"`
	Buckets []DayBucket         `json:"buckets"`
	Days    []DayWindowResponse `json:"days"`
}

func NewTripResponse(t *domain.Trip) TripResponse {
	return TripResponse{
		ID:        t.ID.String(),
		Name:      t.Name,
		DepartAt:  FormatInstant(t.DepartAt),
		CreatedAt: FormatInstant(t.CreatedAt),
		Stops:     FromStops(t.Stops),
	}
}
