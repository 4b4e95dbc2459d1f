// Package http exposes the service over a Fiber HTTP server.
package http

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/places-api/internal/pkg/errors"
	"github.com/places-api/internal/pkg/utils"
	"github.com/places-api/internal/pkg/validator"
	"github.com/places-api/internal/usecase"
	"github.com/places-api/internal/usecase/dto"
)

type PlaceHandler struct {
	usecase *usecase.PlaceUsecase
	log     *zap.Logger
}

func NewPlaceHandler(u *usecase.PlaceUsecase, log *zap.Logger) *PlaceHandler {
	return &PlaceHandler{usecase: u, log: log}
}

func (h *PlaceHandler) Register(router fiber.Router) {
	router.Get("/places", h.ListPlaces)
	router.Get("/places/:id", h.GetPlace)
	router.Get("/events", h.ListEvents)
}

// GetPlace handles GET /v1/places/:id.
func (h *PlaceHandler) GetPlace(c *fiber.Ctx) error {
	id, err := url.QueryUnescape(c.Params("id"))
	if err != nil {
		return utils.SendError(c, apperrors.ErrInvalidPlaceID)
	}
	req := dto.GetPlaceRequest{
		ID:             id,
		Lang:           c.Query("lang"),
		Verbosity:      c.Query("verbosity"),
		FollowRedirect: c.QueryBool("follow_redirect"),
	}
	if err := validator.Validate(req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}

	place, err := h.usecase.GetPlace(c.UserContext(), req)
	if redirect, ok := err.(*apperrors.RedirectError); ok {
		target := "/v1/places/" + url.PathEscape(redirect.Target)
		if query := string(c.Request().URI().QueryString()); query != "" {
			target += "?" + query
		}
		return c.Redirect(target, fiber.StatusSeeOther)
	}
	if err != nil {
		return utils.SendError(c, err)
	}
	return c.JSON(place)
}

// ListPlaces handles GET /v1/places.
func (h *PlaceHandler) ListPlaces(c *fiber.Ctx) error {
	req := dto.ListPlacesRequest{
		RawBbox:   c.Query("bbox"),
		Category:  c.Query("category"),
		Query:     c.Query("q"),
		Source:    c.Query("source"),
		Size:      c.QueryInt("size"),
		Lang:      c.Query("lang"),
		Verbosity: c.Query("verbosity"),
	}
	for _, raw := range c.Context().QueryArgs().PeekMulti("raw_filter") {
		req.RawFilters = append(req.RawFilters, string(raw))
	}
	if err := validator.Validate(req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}

	results, err := h.usecase.ListPlaces(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return c.JSON(fiber.Map{"places": results})
}

// ListEvents handles GET /v1/events.
func (h *PlaceHandler) ListEvents(c *fiber.Ctx) error {
	req := dto.ListEventsRequest{
		RawBbox:   c.Query("bbox"),
		Size:      c.QueryInt("size"),
		Lang:      c.Query("lang"),
		Verbosity: c.Query("verbosity"),
	}
	if err := validator.Validate(req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}

	results, err := h.usecase.ListEvents(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return c.JSON(fiber.Map{"events": results})
}
