package handlers

import (
	"fmt"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is shared by all handlers; validator.Validate caches struct
// metadata and is safe for concurrent use.
var validate = validator.New()

// validateStruct runs the validator and flattens field errors into one
// message.
func validateStruct(s interface{}) (string, bool) {
	if err := validate.Struct(s); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		messages := make([]string, 0, len(validationErrors))
		for _, e := range validationErrors {
			messages = append(messages, fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag()))
		}
		log.Println("Error: 400 - Validation error")
		return strings.Join(messages, "; "), false
	}
	return "", true
}
