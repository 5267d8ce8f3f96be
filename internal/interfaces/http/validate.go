package http

import "github.com/go-playground/validator/v10"

// validate instance partagée (thread-safe, cache de structs).
var validate = validator.New()
