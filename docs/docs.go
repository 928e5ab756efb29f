// Package docs registers the OpenAPI document served under /swagger. It is
// maintained alongside the @ annotations on the handlers.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Sign in",
                "parameters": [
                    {"description": "Credentials and requested role", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.sessionResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register",
                "parameters": [
                    {"description": "Registration details", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.registerRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.sessionResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"],
                "summary": "Sign out",
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Current identity",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Identity"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/products": {
            "get": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Browse the catalog",
                "parameters": [
                    {"type": "string", "description": "Only listings owned by this seller", "name": "sellerId", "in": "query"},
                    {"type": "string", "description": "Case-insensitive search over title and description", "name": "q", "in": "query"},
                    {"type": "string", "description": "Category, or all", "name": "category", "in": "query"},
                    {"type": "string", "description": "all, under300, 300to600 or over600", "name": "price", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.listingsResponse"}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Create a listing",
                "parameters": [
                    {"description": "Listing details", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.createListingRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Listing"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/products/categories": {
            "get": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Category filter choices",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.categoriesResponse"}}}
            }
        },
        "/products/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Get a listing",
                "parameters": [{"type": "string", "description": "Listing id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Listing"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Update a listing",
                "parameters": [
                    {"type": "string", "description": "Listing id", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.updateListingRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Listing"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["products"],
                "summary": "Delete a listing",
                "parameters": [{"type": "string", "description": "Listing id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/sellers/{id}/stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["sellers"],
                "summary": "Seller dashboard summary",
                "parameters": [{"type": "string", "description": "Seller id", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/derive.SellerStats"}}}
            }
        },
        "/cart/quote": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["cart"],
                "summary": "Price a cart",
                "parameters": [
                    {"description": "Cart items", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.quoteRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.quoteResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/checkout": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["cart"],
                "summary": "Place an order",
                "parameters": [
                    {"description": "Cart items, contact and shipping address", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.checkoutRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.orderConfirmation"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "api.errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "domain.Identity": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "email": {"type": "string"},
                "role": {"type": "string", "enum": ["buyer", "seller"]},
                "name": {"type": "string"},
                "phone": {"type": "string"}
            }
        },
        "domain.Listing": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "price": {"type": "number"},
                "category": {"type": "string"},
                "image": {"type": "string"},
                "sellerId": {"type": "string"},
                "originalPrice": {"type": "number"},
                "discount": {"type": "number"},
                "rating": {"type": "number"},
                "reviews": {"type": "integer"},
                "stock": {"type": "integer"},
                "badge": {"type": "string"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "derive.Line": {
            "type": "object",
            "properties": {
                "listingId": {"type": "string"},
                "title": {"type": "string"},
                "unitPrice": {"type": "number"},
                "quantity": {"type": "integer"},
                "stock": {"type": "integer"}
            }
        },
        "derive.Summary": {
            "type": "object",
            "properties": {
                "subtotal": {"type": "number"},
                "shipping": {"type": "number"},
                "total": {"type": "number"},
                "freeShipping": {"type": "boolean"},
                "itemCount": {"type": "integer"}
            }
        },
        "derive.SellerStats": {
            "type": "object",
            "properties": {
                "sellerId": {"type": "string"},
                "totalListings": {"type": "integer"},
                "categoryCount": {"type": "integer"},
                "inventoryValue": {"type": "number"}
            }
        },
        "handler.loginRequest": {
            "type": "object",
            "required": ["email", "password", "role"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"},
                "role": {"type": "string", "enum": ["buyer", "seller", "user"]}
            }
        },
        "handler.registerRequest": {
            "type": "object",
            "required": ["email", "password", "role"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"},
                "role": {"type": "string", "enum": ["buyer", "seller", "user"]},
                "name": {"type": "string"},
                "phone": {"type": "string"}
            }
        },
        "handler.sessionResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "user": {"$ref": "#/definitions/domain.Identity"}
            }
        },
        "handler.createListingRequest": {
            "type": "object",
            "required": ["title", "category"],
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "price": {"type": "number", "minimum": 0},
                "category": {"type": "string"},
                "image": {"type": "string"},
                "originalPrice": {"type": "number", "minimum": 0},
                "discount": {"type": "number", "minimum": 0, "maximum": 100},
                "rating": {"type": "number", "minimum": 0, "maximum": 5},
                "reviews": {"type": "integer", "minimum": 0},
                "stock": {"type": "integer", "minimum": 0},
                "badge": {"type": "string"}
            }
        },
        "handler.updateListingRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "price": {"type": "number", "minimum": 0},
                "category": {"type": "string"},
                "image": {"type": "string"},
                "originalPrice": {"type": "number", "minimum": 0},
                "discount": {"type": "number", "minimum": 0, "maximum": 100},
                "rating": {"type": "number", "minimum": 0, "maximum": 5},
                "reviews": {"type": "integer", "minimum": 0},
                "stock": {"type": "integer", "minimum": 0},
                "badge": {"type": "string"}
            }
        },
        "handler.listingsResponse": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/domain.Listing"}},
                "total": {"type": "integer"}
            }
        },
        "handler.categoriesResponse": {
            "type": "object",
            "properties": {"categories": {"type": "array", "items": {"type": "string"}}}
        },
        "handler.quoteItem": {
            "type": "object",
            "required": ["listingId"],
            "properties": {
                "listingId": {"type": "string"},
                "quantity": {"type": "integer", "minimum": 1}
            }
        },
        "handler.quoteRequest": {
            "type": "object",
            "properties": {"items": {"type": "array", "items": {"$ref": "#/definitions/handler.quoteItem"}}}
        },
        "handler.quoteResponse": {
            "type": "object",
            "properties": {
                "lines": {"type": "array", "items": {"$ref": "#/definitions/derive.Line"}},
                "summary": {"$ref": "#/definitions/derive.Summary"}
            }
        },
        "handler.checkoutContact": {
            "type": "object",
            "required": ["firstName", "lastName", "email"],
            "properties": {
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"}
            }
        },
        "handler.shippingAddress": {
            "type": "object",
            "required": ["address", "city", "province", "postalCode"],
            "properties": {
                "address": {"type": "string"},
                "city": {"type": "string"},
                "province": {
                    "type": "string",
                    "enum": ["Eastern Cape", "Free State", "Gauteng", "KwaZulu-Natal", "Limpopo", "Mpumalanga", "Northern Cape", "North West", "Western Cape"]
                },
                "postalCode": {"type": "string", "maxLength": 4, "minLength": 4}
            }
        },
        "handler.checkoutRequest": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "minItems": 1, "items": {"$ref": "#/definitions/handler.quoteItem"}},
                "contact": {"$ref": "#/definitions/handler.checkoutContact"},
                "shippingAddress": {"$ref": "#/definitions/handler.shippingAddress"}
            }
        },
        "handler.orderConfirmation": {
            "type": "object",
            "properties": {
                "orderId": {"type": "string"},
                "status": {"type": "string"},
                "buyerId": {"type": "string"},
                "placedAt": {"type": "string"},
                "contact": {"$ref": "#/definitions/handler.checkoutContact"},
                "shippingAddress": {"$ref": "#/definitions/handler.shippingAddress"},
                "lines": {"type": "array", "items": {"$ref": "#/definitions/derive.Line"}},
                "summary": {"$ref": "#/definitions/derive.Summary"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Storefront API",
	Description:      "Marketplace sessions, catalog and checkout quotes.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
