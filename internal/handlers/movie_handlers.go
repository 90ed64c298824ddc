package handlers

import (
	"errors"
	"strconv"

	"github.com/fathima-sithara/media-catalog/internal/models"
	"github.com/fathima-sithara/media-catalog/internal/services"
	"github.com/fathima-sithara/media-catalog/internal/utils"
	"github.com/gofiber/fiber/v2"
)

type MovieHandler struct {
	svc services.MovieService
}

func NewMovieHandler(svc services.MovieService) *MovieHandler {
	return &MovieHandler{svc: svc}
}

// movieReq is shared by create and update. Images and Poster are pointers so
// an absent field is distinguishable from an empty one.
type movieReq struct {
	Title       string    `json:"title" validate:"required,min=1"`
	Description string    `json:"description"`
	ReleaseYear int       `json:"releaseYear" validate:"required,gte=1888"`
	Type        string    `json:"type" validate:"required,oneof=MOVIE TV_SHOW"`
	Director    string    `json:"director"`
	Budget      int64     `json:"budget"`
	Location    string    `json:"location"`
	Duration    int       `json:"duration"`
	Images      *[]string `json:"images"`
	Poster      *string   `json:"poster"`
}

func (h *MovieHandler) Create(c *fiber.Ctx) error {
	var req movieReq
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "invalid body")
	}
	if err := validate.Struct(req); err != nil {
		return utils.JSONValidationError(c, utils.FormatValidationErrors(err))
	}

	in := services.CreateMovieInput{
		Title:       req.Title,
		Description: req.Description,
		ReleaseYear: req.ReleaseYear,
		Type:        models.MediaType(req.Type),
		Director:    req.Director,
		Budget:      req.Budget,
		Location:    req.Location,
		Duration:    req.Duration,
		Poster:      req.Poster,
	}
	if req.Images != nil {
		in.Images = *req.Images
	}

	movie, err := h.svc.Create(c.Context(), in)
	if err != nil {
		return utils.JSONError(c, fiber.StatusInternalServerError, err.Error())
	}
	return utils.JSONSuccess(c, fiber.StatusCreated, movie)
}

func (h *MovieHandler) List(c *fiber.Ctx) error {
	q := services.ListMoviesQuery{
		Page:     c.QueryInt("page", 1),
		Limit:    c.QueryInt("limit", 10),
		Director: c.Query("director"),
		Type:     c.Query("type"),
		Search:   c.Query("search"),
	}
	if raw := c.Query("releaseYear"); raw != "" {
		if year, err := strconv.Atoi(raw); err == nil {
			q.Year = &year
		}
	}

	page, err := h.svc.List(c.Context(), q)
	if err != nil {
		return utils.JSONError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.Status(fiber.StatusOK).JSON(page)
}

func (h *MovieHandler) GetByID(c *fiber.Ctx) error {
	movie, err := h.svc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return movieError(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, movie)
}

func (h *MovieHandler) Update(c *fiber.Ctx) error {
	var req movieReq
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "invalid body")
	}
	if err := validate.Struct(req); err != nil {
		return utils.JSONValidationError(c, utils.FormatValidationErrors(err))
	}

	in := services.UpdateMovieInput{
		Title:       req.Title,
		Description: req.Description,
		ReleaseYear: req.ReleaseYear,
		Type:        models.MediaType(req.Type),
		Director:    req.Director,
		Budget:      req.Budget,
		Location:    req.Location,
		Duration:    req.Duration,
		Images:      req.Images,
		Poster:      req.Poster,
	}

	movie, err := h.svc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return movieError(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, movie)
}

func (h *MovieHandler) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.Context(), c.Params("id")); err != nil {
		return movieError(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{"message": "movie deleted"})
}

func movieError(c *fiber.Ctx, err error) error {
	if errors.Is(err, services.ErrMovieNotFound) {
		return utils.JSONError(c, fiber.StatusNotFound, err.Error())
	}
	return utils.JSONError(c, fiber.StatusInternalServerError, err.Error())
}
