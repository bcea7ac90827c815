package handlers

// @title Options Contracts API
// @version 1.0
// @description Filtered option contract snapshots for an underlying ticker, sourced from Polygon.io

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8081
// @BasePath /api/v1

// @securityDefinitions.apikey ProviderKey
// @in header
// @name X-API-Key
// @description Polygon.io API key. Falls back to the api_key query parameter, then POLYGON_API_KEY.

// @tag.name options
// @tag.description Option contract snapshots
