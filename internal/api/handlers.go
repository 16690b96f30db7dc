package api

import (
	"errors"
	"net/http"

	"homesight/server/config"
	"homesight/server/internal/features"
	"homesight/server/internal/geocoding"
	"homesight/server/internal/models"
	"homesight/server/internal/prediction"
	"homesight/server/internal/queue"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	logger      *logrus.Logger
	geocoder    *geocoding.Geocoder
	deriver     *features.Deriver
	adapter     *prediction.Adapter
	ingestQueue *queue.RecordQueue
}

type GeocodeRequest struct {
	Address string `json:"address"`
}

type IngestRequest struct {
	Properties []map[string]interface{} `json:"properties" binding:"required"`
}

func NewHandler(logger *logrus.Logger, geocoder *geocoding.Geocoder, deriver *features.Deriver, adapter *prediction.Adapter, ingestQueue *queue.RecordQueue) *Handler {
	return &Handler{
		logger:      logger,
		geocoder:    geocoder,
		deriver:     deriver,
		adapter:     adapter,
		ingestQueue: ingestQueue,
	}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// DeriveFeatures derives the model feature vector for a property. The
// payload is either the property attributes or `{"data": {...}}` wrapping
// them.
func (h *Handler) DeriveFeatures(c *gin.Context) {
	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		h.logger.WithError(err).Error("Failed to parse feature request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	raw := body
	if inner, ok := body["data"].(map[string]interface{}); ok {
		raw = inner
	}
	if len(raw) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	h.resolveCoordinates(raw)

	assembled := h.deriver.Derive(raw)

	schema := config.GetModelSchema()
	if schema == nil {
		h.logger.Error("No model schema loaded")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Model schema not available"})
		return
	}

	vector := features.Reconcile(assembled, schema, h.logger)
	vector["originalInputs"] = assembled["originalInputs"]

	c.JSON(http.StatusOK, vector)
}

// Predict scores a property. The payload is either raw attributes, or the
// pre-enriched output of DeriveFeatures carrying originalInputs and the
// computed metrics.
func (h *Handler) Predict(c *gin.Context) {
	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil || len(body) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No input data provided"})
		return
	}

	data := body
	if _, enriched := body["originalInputs"]; !enriched {
		// Raw attribute shape: run the derivation pipeline first.
		h.resolveCoordinates(body)
		data = h.deriver.Derive(body)
	}

	result := h.adapter.Predict(data)
	if result.Error != "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": result.Error})
		return
	}

	c.JSON(http.StatusOK, gin.H{"prediction": *result.Prediction})
}

// Geocode resolves a free-form address to coordinates.
func (h *Handler) Geocode(c *gin.Context) {
	var req GeocodeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Address == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Address is required"})
		return
	}

	result, err := h.geocoder.GeocodeAddress(req.Address)
	if err != nil {
		if errors.Is(err, geocoding.ErrNoResults) {
			c.JSON(http.StatusNotFound, gin.H{"message": "No results found for the given address"})
			return
		}
		h.logger.WithError(err).Error("Failed to geocode address")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// IngestProperties accepts a batch of comparable records and queues them
// for upsert into the corpus.
func (h *Handler) IngestProperties(c *gin.Context) {
	var req IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Failed to parse ingest request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request parameters"})
		return
	}

	records := make([]*models.PropertyRecord, 0, len(req.Properties))
	for _, raw := range req.Properties {
		record := models.ParseRecord(raw)
		records = append(records, &record)
	}

	if err := h.ingestQueue.Push(records); err != nil {
		h.logger.WithError(err).Error("Failed to queue property batch")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Ingest queue unavailable"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status": "queued",
		"count":  len(records),
	})
}

// resolveCoordinates backfills latitude/longitude from the address when a
// request arrives without coordinates. Failure leaves the request as-is;
// the pipeline degrades to zero-neighbor metrics.
func (h *Handler) resolveCoordinates(raw map[string]interface{}) {
	if _, ok := models.CoerceFloat(raw["latitude"]); ok {
		if _, ok := models.CoerceFloat(raw["longitude"]); ok {
			return
		}
	}

	address := models.CoerceString(raw["address"])
	if address == "" || h.geocoder == nil {
		return
	}

	result, err := h.geocoder.GeocodeAddress(address)
	if err != nil {
		h.logger.WithError(err).WithField("address", address).Warn("Could not resolve coordinates from address")
		return
	}

	raw["latitude"] = result.Latitude
	raw["longitude"] = result.Longitude
}
