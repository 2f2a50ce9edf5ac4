package main

// @title Kape Lokal POS API
// @version 1.0
// @description Point of sale and back office API for a retail coffee shop: catalog, checkout, order history, analytics and account administration.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@example.com

// @license.name MIT

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @tag.name Catalog
// @tag.description Category, product and menu board endpoints

// @tag.name Orders
// @tag.description Checkout and order history endpoints

// @tag.name Analytics
// @tag.description Sales reporting and dashboard endpoints

// @tag.name Users
// @tag.description Account administration and authentication endpoints

// @tag.name Health
// @tag.description Health check endpoints
