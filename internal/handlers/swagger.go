package handlers

// @title Camp Signup API
// @version 1.0
// @description Campers, activities and the signups that book campers into activities

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:5555
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token. Only required when AUTH_ENABLED is set.

// @tag.name campers
// @tag.description Camper registration

// @tag.name activities
// @tag.description Camp activities

// @tag.name signups
// @tag.description Booking campers into activities

// @tag.name health
// @tag.description Liveness probes
