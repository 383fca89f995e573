package validator

import "github.com/go-playground/validator/v10"

// Coordinate and radius bounds. Zero is inside every range: the equator,
// the prime meridian and a 0-radius query are all handled upstream, never
// rejected here as "missing".
const (
	minLat, maxLat           = -90.0, 90.0
	minLng, maxLng           = -180.0, 180.0
	minRadiusKM, maxRadiusKM = 0.1, 100.0
)

func RegisterCustomValidations(v *validator.Validate) {
	_ = v.RegisterValidation("lat", rangeRule(minLat, maxLat))
	_ = v.RegisterValidation("lng", rangeRule(minLng, maxLng))
	_ = v.RegisterValidation("radius_km", rangeRule(minRadiusKM, maxRadiusKM))
}

func rangeRule(min, max float64) validator.Func {
	return func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return f >= min && f <= max
	}
}
