package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/alessioferri/trattoria-app/services"
	"github.com/alessioferri/trattoria-app/utils"
)

type AdminController struct {
	Admin  *services.AdminService
	Images *services.ImageService
	Notify *services.NotifyService
}

func NewAdminController(admin *services.AdminService, images *services.ImageService, notify *services.NotifyService) *AdminController {
	return &AdminController{Admin: admin, Images: images, Notify: notify}
}

// GetOrders lists recent orders for the dashboard.
func (ac *AdminController) GetOrders(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	orders, err := ac.Admin.RecentOrders(limit)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Recent orders", orders)
}

func (ac *AdminController) GetOrderByID(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("order_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	order, err := ac.Admin.OrderByID(uint(orderID))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", gin.H{
		"order":      order,
		"user_email": order.User.Email,
		"user_name":  order.User.FirstName + " " + order.User.LastName,
	})
}

// UpdateOrderStatus replaces an order's status with one of the allowed values.
func (ac *AdminController) UpdateOrderStatus(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("order_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := ac.Admin.UpdateStatus(uint(orderID), req.Status); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStatus):
			utils.RespondError(c, http.StatusBadRequest, err)
		case errors.Is(err, gorm.ErrRecordNotFound):
			utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		default:
			utils.RespondError(c, http.StatusInternalServerError, err)
		}
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Status updated", gin.H{
		"order_id": orderID,
		"status":   req.Status,
	})
}

// ResendConfirmation re-delivers the confirmation payload to the sink. The
// sink is idempotent on order id, so re-delivery is safe.
func (ac *AdminController) ResendConfirmation(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("order_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	order, err := ac.Admin.OrderByID(uint(orderID))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}

	payload := services.BuildConfirmation(*order, order.User.Email)
	if err := ac.Notify.SendOrderConfirmation(c.Request.Context(), payload); err != nil {
		utils.ErrorLogger.Printf("resend confirmation for order %d: %v", order.ID, err)
		utils.RespondError(c, http.StatusBadGateway, errors.New("confirmation delivery failed"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Confirmation sent", gin.H{
		"order_id": order.ID,
	})
}

// UploadImage stores a menu image and adds it to the library.
func (ac *AdminController) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("image file is required"))
		return
	}

	src, err := file.Open()
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("cannot read image file"))
		return
	}
	defer src.Close()

	image, err := ac.Images.Upload(c.Request.Context(), file.Filename, src)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Image uploaded", image)
}

// GetImageLibrary lists active images and the homepage slots.
func (ac *AdminController) GetImageLibrary(c *gin.Context) {
	images, slots, err := ac.Images.Library(c.Request.Context())
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Image library", gin.H{
		"images": images,
		"slots":  slots,
	})
}

func (ac *AdminController) HideImage(c *gin.Context) {
	if err := ac.Images.Hide(c.Request.Context(), c.Param("image_id")); err != nil {
		if errors.Is(err, services.ErrImageNotFound) {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Image hidden", nil)
}

func (ac *AdminController) DeleteImage(c *gin.Context) {
	if err := ac.Images.Delete(c.Request.Context(), c.Param("image_id")); err != nil {
		if errors.Is(err, services.ErrImageNotFound) {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Image deleted", nil)
}

// SetHomepageSlots pins library images to the landing page.
func (ac *AdminController) SetHomepageSlots(c *gin.Context) {
	var req struct {
		Slot1 *string `json:"slot1"`
		Slot2 *string `json:"slot2"`
		Slot3 *string `json:"slot3"`
		Slot4 *string `json:"slot4"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := ac.Images.SetHomepageSlots(c.Request.Context(), req.Slot1, req.Slot2, req.Slot3, req.Slot4); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Homepage slots updated", nil)
}
