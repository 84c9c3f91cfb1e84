package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"restodash/dashboard-svc/internal/domain"
)

func reservationPath(restaurantID, reservationID int) string {
	return fmt.Sprintf("/restaurants/%d/reservations/%d", restaurantID, reservationID)
}

// ListReservations returns reservations with dates in [from, to]. Empty bounds are omitted.
func (c *Client) ListReservations(ctx context.Context, restaurantID int, from, to string) ([]domain.Reservation, error) {
	query := url.Values{}
	if from != "" {
		query.Set("date_from", from)
	}
	if to != "" {
		query.Set("date_to", to)
	}
	var out []domain.Reservation
	_, err := c.do(ctx, http.MethodGet, restaurantPath(restaurantID)+"/reservations", query, nil, &out)
	return out, err
}

func (c *Client) GetReservation(ctx context.Context, restaurantID, reservationID int) (*domain.Reservation, error) {
	var out domain.Reservation
	if _, err := c.do(ctx, http.MethodGet, reservationPath(restaurantID, reservationID), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateReservation(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	var out domain.Reservation
	if _, err := c.do(ctx, http.MethodPost, restaurantPath(res.RestaurantID)+"/reservations", nil, res, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateReservation(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	var out domain.Reservation
	if _, err := c.do(ctx, http.MethodPut, reservationPath(res.RestaurantID, res.ID), nil, res, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateReservationStatus(ctx context.Context, restaurantID, reservationID int, status domain.ReservationStatus) (*domain.Reservation, error) {
	var out domain.Reservation
	body := map[string]domain.ReservationStatus{"status": status}
	if _, err := c.do(ctx, http.MethodPut, reservationPath(restaurantID, reservationID)+"/status", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteReservation(ctx context.Context, restaurantID, reservationID int) error {
	_, err := c.do(ctx, http.MethodDelete, reservationPath(restaurantID, reservationID), nil, nil, nil)
	return err
}
