package validator

import (
	"ctchen222/tic-tac-toe-minimax/internal/game"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	// Initialize validation
	validate = validator.New(validator.WithRequiredStructEnabled())

	// game_mode accepts the modes a session can switch to.
	if err := validate.RegisterValidation("game_mode", func(fl validator.FieldLevel) bool {
		return game.Mode(fl.Field().String()).Valid()
	}); err != nil {
		panic(err)
	}
}

func GetValidator() *validator.Validate {
	return validate
}
