// Package docs registers the OpenAPI description of the agent session API
// for serving through the swagger UI route.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/orders": {
            "get": {
                "summary": "List visible orders",
                "description": "Orders in display order: most recently pushed first, then the snapshot base.",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/orders/{orderId}/accept": {
            "post": {
                "summary": "Accept an order",
                "description": "Records the acceptance with the backend and publishes a route. A position failure keeps the acceptance and reports routeAvailable=false.",
                "produces": ["application/json"],
                "parameters": [
                    {"name": "orderId", "in": "path", "required": true, "type": "string", "format": "uuid"}
                ],
                "responses": {
                    "200": {"description": "Accepted"},
                    "400": {"description": "Invalid order id"},
                    "404": {"description": "Order not found"},
                    "409": {"description": "Already actioned or action in flight"},
                    "502": {"description": "Backend call failed"}
                }
            }
        },
        "/orders/{orderId}/reject": {
            "post": {
                "summary": "Reject an order",
                "description": "Records the rejection with the backend and removes the order from the visible set for the rest of the session.",
                "produces": ["application/json"],
                "parameters": [
                    {"name": "orderId", "in": "path", "required": true, "type": "string", "format": "uuid"}
                ],
                "responses": {
                    "200": {"description": "Rejected"},
                    "400": {"description": "Invalid order id"},
                    "404": {"description": "Order not found"},
                    "409": {"description": "Already actioned or action in flight"},
                    "502": {"description": "Backend call failed"}
                }
            }
        },
        "/route": {
            "get": {
                "summary": "Current route",
                "description": "The route on the map view, from the agent's position at accept time to the customer.",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "No active route"}
                }
            },
            "delete": {
                "summary": "Close the map view",
                "responses": {
                    "204": {"description": "Closed"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http"},
	Title:            "Agent Session API",
	Description:      "Order assignment session for one logged-in delivery agent",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
