package handler

import (
	"log"

	"rumahpasar/internal/domain/repository"
	"rumahpasar/internal/usecase"
	"rumahpasar/pkg/errors"
	"rumahpasar/pkg/response"
	"rumahpasar/pkg/utils"

	"github.com/labstack/echo/v4"
)

type PropertyHandler struct {
	propertyUseCase *usecase.PropertyUseCase
}

func NewPropertyHandler(propertyUseCase *usecase.PropertyUseCase) *PropertyHandler {
	return &PropertyHandler{
		propertyUseCase: propertyUseCase,
	}
}

type createPropertyRequest struct {
	Title        string   `json:"title" validate:"required,min=5"`
	Description  string   `json:"description" validate:"omitempty,max=5000"`
	Price        float64  `json:"price" validate:"required,gt=0"`
	Type         string   `json:"type" validate:"required,oneof=house apartment land commercial"`
	ListingType  string   `json:"listing_type" validate:"required,oneof=sale rent"`
	Address      string   `json:"address" validate:"required"`
	City         string   `json:"city" validate:"required"`
	Province     string   `json:"province" validate:"omitempty"`
	Bedrooms     int      `json:"bedrooms" validate:"omitempty,min=0"`
	Bathrooms    int      `json:"bathrooms" validate:"omitempty,min=0"`
	BuildingArea float64  `json:"building_area" validate:"omitempty,gt=0"`
	LandArea     float64  `json:"land_area" validate:"omitempty,gt=0"`
	ImageURLs    []string `json:"image_urls" validate:"omitempty,dive,url"`
}

type updatePropertyRequest struct {
	Title       string   `json:"title" validate:"omitempty,min=5"`
	Description string   `json:"description" validate:"omitempty,max=5000"`
	Price       float64  `json:"price" validate:"omitempty,gt=0"`
	Status      string   `json:"status" validate:"omitempty,oneof=available pending sold"`
	ImageURLs   []string `json:"image_urls" validate:"omitempty,dive,url"`
}

type inquireRequest struct {
	Message string `json:"message" validate:"required,min=1,max=2000"`
}

func (h *PropertyHandler) CreateProperty(c echo.Context) error {
	var req createPropertyRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	property, err := h.propertyUseCase.Create(c.Request().Context(), uid, usecase.CreatePropertyInput{
		Title:        req.Title,
		Description:  req.Description,
		Price:        req.Price,
		Type:         req.Type,
		ListingType:  req.ListingType,
		Address:      req.Address,
		City:         req.City,
		Province:     req.Province,
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
		BuildingArea: req.BuildingArea,
		LandArea:     req.LandArea,
		ImageURLs:    req.ImageURLs,
	})
	if err != nil {
		log.Printf("Error creating property: %v", err)
		return response.Error(c, err)
	}

	return response.Created(c, property)
}

func (h *PropertyHandler) ListProperties(c echo.Context) error {
	limit, offset := utils.GetLimitOffset(c)

	filter := repository.PropertyFilter{
		City:        c.QueryParam("city"),
		Type:        c.QueryParam("type"),
		Status:      c.QueryParam("status"),
		ListingType: c.QueryParam("listing_type"),
		SellerID:    c.QueryParam("seller_id"),
	}

	properties, total, err := h.propertyUseCase.List(c.Request().Context(), filter, limit, offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.SuccessPaginated(c, properties, total, limit, offset)
}

func (h *PropertyHandler) GetProperty(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return response.Error(c, errors.BadRequest("Property ID is required", nil))
	}

	property, err := h.propertyUseCase.GetByID(c.Request().Context(), id)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, property)
}

func (h *PropertyHandler) UpdateProperty(c echo.Context) error {
	var req updatePropertyRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)
	id := c.Param("id")

	property, err := h.propertyUseCase.Update(c.Request().Context(), uid, id, usecase.UpdatePropertyInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Status:      req.Status,
		ImageURLs:   req.ImageURLs,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, property)
}

func (h *PropertyHandler) ArchiveProperty(c echo.Context) error {
	uid := c.Get("uid").(string)
	id := c.Param("id")

	if err := h.propertyUseCase.Archive(c.Request().Context(), uid, id); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Property archived successfully",
	})
}

// InquireProperty opens (or reuses) a conversation with the listing's
// seller and sends the inquiry as its first message.
func (h *PropertyHandler) InquireProperty(c echo.Context) error {
	var req inquireRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)
	propertyID := c.Param("id")

	conversation, err := h.propertyUseCase.Inquire(c.Request().Context(), uid, propertyID, req.Message)
	if err != nil {
		log.Printf("Error inquiring property %s: %v", propertyID, err)
		return response.Error(c, err)
	}

	return response.Created(c, conversation)
}
