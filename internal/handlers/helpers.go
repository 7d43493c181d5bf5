package handlers

import (
	"encoding/base64"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/radholm/Scampea-Backend/internal/storage"
	"github.com/radholm/Scampea-Backend/internal/validation"
)

func validationFailed(ctx *gin.Context, errs validation.Errors) {
	ctx.JSON(http.StatusUnprocessableEntity, gin.H{
		"errors":  errs,
		"message": "The given data was invalid.",
	})
}

func internalError(ctx *gin.Context, err error) {
	log.Printf("Internal error on %s %s: %v", ctx.Request.Method, ctx.Request.URL.Path, err)
	ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
}

// uintValue coerces the loosely typed values JSON binding produces
// (numbers arrive as float64, path parameters as strings).
func uintValue(value any) uint {
	switch v := value.(type) {
	case float64:
		return uint(v)
	case string:
		n, _ := strconv.ParseUint(v, 10, 64)
		return uint(n)
	case int:
		return uint(v)
	case uint:
		return v
	}
	return 0
}

func boolValue(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case float64:
		return v == 1
	case string:
		return v == "1" || v == "true"
	}
	return false
}

// uploadPicture stores an embedded data-URI image payload under
// <username>.<ext>, where ext is the declared MIME subtype up to its first
// slash, and returns the path to persist. The resulting filename must stay a
// single path element; payloads that would not are rejected. An empty payload
// means "unchanged" and is a no-op.
func uploadPicture(payload, username string) (string, error) {
	if payload == "" {
		return "", nil
	}

	semicolon := strings.Index(payload, ";")
	if !strings.HasPrefix(payload, "data:image/") || semicolon < 0 {
		return "", fmt.Errorf("malformed image payload")
	}

	ext := payload[len("data:image/"):semicolon]
	if slash := strings.IndexByte(ext, '/'); slash >= 0 {
		ext = ext[:slash]
	}
	if ext == "" || strings.ContainsAny(ext, `/\`) || strings.Contains(ext, "..") ||
		strings.ContainsAny(username, `/\`) || strings.Contains(username, "..") {
		return "", fmt.Errorf("invalid picture filename")
	}

	comma := strings.Index(payload, ",")
	if comma < 0 {
		return "", fmt.Errorf("malformed image payload")
	}

	data, err := base64.StdEncoding.DecodeString(payload[comma+1:])
	if err != nil {
		return "", fmt.Errorf("decode image payload: %w", err)
	}

	return storage.Pictures.Put(username+"."+ext, data)
}
