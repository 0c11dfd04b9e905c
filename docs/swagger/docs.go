// Package swagger registers the OpenAPI document served at /swagger/doc.json.
// Regenerate with: swag init -g cmd/api/main.go -o docs/swagger
package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "termsOfService": "http://swagger.io/terms/",
        "contact": {
            "name": "API Support",
            "email": "support@sharebox.dev"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/session": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Start session",
                "description": "Binds a trusted identity to a server-side session cookie",
                "parameters": [
                    {
                        "description": "Identity",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/StartSessionRequest"}
                    }
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "422": {"description": "Unprocessable Entity", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            },
            "delete": {
                "tags": ["auth"],
                "summary": "End session",
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/listings": {
            "get": {
                "produces": ["application/json"],
                "tags": ["listings"],
                "summary": "List listings",
                "description": "Pages through available and pending listings, newest first",
                "parameters": [
                    {"type": "string", "description": "Continuation cursor from a previous page", "name": "cursor", "in": "query"},
                    {"type": "integer", "description": "Page size (default 20, max 100)", "name": "page_size", "in": "query"},
                    {"type": "string", "description": "Filter by category", "name": "category", "in": "query"},
                    {"type": "string", "description": "Filter by listing type (donation|sale)", "name": "type", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ListingPageResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["listings"],
                "summary": "Create listing",
                "description": "Creates a new donation or sale listing",
                "parameters": [
                    {
                        "description": "Listing creation request",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/CreateListingRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ListingResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/listings/mine": {
            "get": {
                "produces": ["application/json"],
                "tags": ["listings"],
                "summary": "List own listings",
                "description": "Lists all listings of the authenticated user, any status",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/ListingResponse"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/listings/{listingID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["listings"],
                "summary": "Get listing",
                "description": "Fetches a single listing by id, optionally counting the view",
                "parameters": [
                    {"type": "string", "description": "Listing id", "name": "listingID", "in": "path", "required": true},
                    {"type": "string", "description": "Set to 1 to count this view", "name": "view", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ListingResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            },
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["listings"],
                "summary": "Update listing",
                "description": "Partially updates content fields of an owned listing",
                "parameters": [
                    {"type": "string", "description": "Listing id", "name": "listingID", "in": "path", "required": true},
                    {
                        "description": "Fields to change",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/UpdateListingRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ListingResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["listings"],
                "summary": "Delete listing",
                "description": "Permanently removes an owned listing",
                "parameters": [
                    {"type": "string", "description": "Listing id", "name": "listingID", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/listings/{listingID}/like": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["listings"],
                "summary": "Toggle like",
                "description": "Atomically applies +1 or -1 to the listing's like counter",
                "parameters": [
                    {"type": "string", "description": "Listing id", "name": "listingID", "in": "path", "required": true},
                    {
                        "description": "Like delta",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/ToggleLikeRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ToggleLikeResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/listings/{listingID}/status": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["listings"],
                "summary": "Close listing",
                "description": "Marks an owned listing sold or taken without a transaction",
                "parameters": [
                    {"type": "string", "description": "Listing id", "name": "listingID", "in": "path", "required": true},
                    {
                        "description": "Closing status",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/SetListingStatusRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ListingResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/transactions": {
            "get": {
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "List transactions",
                "description": "Lists the caller's negotiation threads",
                "parameters": [
                    {"type": "string", "description": "buyer, seller, or omitted for the full inbox", "name": "role", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/TransactionResponse"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/TradeErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Open transaction",
                "description": "Opens a buyer-seller negotiation thread on a listing",
                "parameters": [
                    {
                        "description": "Transaction request",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/CreateTransactionRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/TransactionResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/TradeErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/TradeErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/TradeErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/TradeErrorResponse"}}
                }
            }
        },
        "/transactions/{transactionID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Get transaction",
                "description": "Fetches a single transaction by id",
                "parameters": [
                    {"type": "string", "description": "Transaction id", "name": "transactionID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/TransactionResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/TradeErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/TradeErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/TradeErrorResponse"}}
                }
            }
        },
        "/transactions/{transactionID}/messages": {
            "get": {
                "produces": ["application/json"],
                "tags": ["messages"],
                "summary": "List messages",
                "description": "Returns a transaction's conversation in send order",
                "parameters": [
                    {"type": "string", "description": "Transaction id", "name": "transactionID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/MessageResponse"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ChatErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ChatErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ChatErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["messages"],
                "summary": "Send message",
                "description": "Appends a text message to a transaction's conversation",
                "parameters": [
                    {"type": "string", "description": "Transaction id", "name": "transactionID", "in": "path", "required": true},
                    {
                        "description": "Message body",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/SendMessageRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/MessageResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ChatErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ChatErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ChatErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/ChatErrorResponse"}}
                }
            }
        },
        "/transactions/{transactionID}/messages/stream": {
            "get": {
                "produces": ["text/event-stream"],
                "tags": ["messages"],
                "summary": "Stream messages",
                "description": "Server-sent events stream of conversation snapshots",
                "parameters": [
                    {"type": "string", "description": "Transaction id", "name": "transactionID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ChatErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ChatErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ChatErrorResponse"}}
                }
            }
        },
        "/transactions/{transactionID}/status": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Transition transaction",
                "description": "Approves, completes, or rejects a negotiation thread",
                "parameters": [
                    {"type": "string", "description": "Transaction id", "name": "transactionID", "in": "path", "required": true},
                    {
                        "description": "Target status",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/SetTransactionStatusRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/TransactionResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/TradeErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/TradeErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/TradeErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/TradeErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "ChatErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "message body must not be empty"}
            }
        },
        "CreateListingRequest": {
            "type": "object",
            "required": ["category", "condition", "description", "title", "type"],
            "properties": {
                "category": {"type": "string", "maxLength": 64, "example": "sports"},
                "condition": {"type": "string", "enum": ["new", "excellent", "good", "fair"], "example": "good"},
                "description": {"type": "string", "maxLength": 2000, "minLength": 1, "example": "Lightly used"},
                "images": {"type": "array", "items": {"type": "string"}},
                "negotiable": {"type": "boolean"},
                "price": {"type": "number", "example": 500},
                "tags": {"type": "array", "items": {"type": "string"}},
                "title": {"type": "string", "maxLength": 120, "minLength": 1, "example": "Road bike"},
                "type": {"type": "string", "enum": ["donation", "sale"], "example": "sale"}
            }
        },
        "CreateTransactionRequest": {
            "type": "object",
            "required": ["listing_id"],
            "properties": {
                "listing_id": {"type": "string", "example": "f4a21c3e"},
                "message": {"type": "string", "maxLength": 2000, "example": "Would you take 450?"},
                "offered_price": {"type": "number", "example": 450}
            }
        },
        "ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "title must not be empty"}
            }
        },
        "ListingPageResponse": {
            "type": "object",
            "properties": {
                "has_more": {"type": "boolean"},
                "listings": {"type": "array", "items": {"$ref": "#/definitions/ListingResponse"}},
                "next_cursor": {"type": "string"}
            }
        },
        "ListingResponse": {
            "type": "object",
            "properties": {
                "category": {"type": "string", "example": "sports"},
                "condition": {"type": "string", "example": "good"},
                "created_at": {"type": "string"},
                "description": {"type": "string", "example": "Lightly used"},
                "id": {"type": "string", "example": "f4a21c3e"},
                "images": {"type": "array", "items": {"type": "string"}},
                "likes": {"type": "integer", "example": 3},
                "negotiable": {"type": "boolean"},
                "owner_id": {"type": "string", "example": "user-42"},
                "owner_name": {"type": "string", "example": "Alice"},
                "price": {"type": "number", "example": 500},
                "status": {"type": "string", "example": "available"},
                "tags": {"type": "array", "items": {"type": "string"}},
                "title": {"type": "string", "example": "Road bike"},
                "type": {"type": "string", "example": "sale"},
                "updated_at": {"type": "string"},
                "views": {"type": "integer", "example": 12}
            }
        },
        "MessageResponse": {
            "type": "object",
            "properties": {
                "body": {"type": "string"},
                "created_at": {"type": "string"},
                "id": {"type": "string"},
                "sender_id": {"type": "string"},
                "sender_name": {"type": "string"},
                "type": {"type": "string", "example": "text"}
            }
        },
        "SendMessageRequest": {
            "type": "object",
            "required": ["body"],
            "properties": {
                "body": {"type": "string", "maxLength": 2000, "minLength": 1, "example": "Is this still available?"}
            }
        },
        "SetListingStatusRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {
                "status": {"type": "string", "enum": ["sold", "taken"], "example": "sold"}
            }
        },
        "SetTransactionStatusRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {
                "status": {"type": "string", "enum": ["approved", "completed", "rejected"], "example": "approved"}
            }
        },
        "StartSessionRequest": {
            "type": "object",
            "required": ["display_name", "user_id"],
            "properties": {
                "display_name": {"type": "string", "maxLength": 255, "minLength": 1},
                "email": {"type": "string"},
                "user_id": {"type": "string", "maxLength": 128, "minLength": 1}
            }
        },
        "ToggleLikeRequest": {
            "type": "object",
            "required": ["delta"],
            "properties": {
                "delta": {"type": "integer", "enum": [1, -1], "example": 1}
            }
        },
        "ToggleLikeResponse": {
            "type": "object",
            "properties": {
                "likes": {"type": "integer", "example": 4}
            }
        },
        "TradeErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "invalid transaction status transition"}
            }
        },
        "TransactionResponse": {
            "type": "object",
            "properties": {
                "buyer_id": {"type": "string"},
                "buyer_name": {"type": "string"},
                "created_at": {"type": "string"},
                "id": {"type": "string"},
                "last_message": {"type": "string"},
                "last_message_sender_id": {"type": "string"},
                "listing_id": {"type": "string"},
                "listing_price": {"type": "number"},
                "listing_title": {"type": "string"},
                "listing_type": {"type": "string"},
                "offered_price": {"type": "number"},
                "seller_id": {"type": "string"},
                "seller_name": {"type": "string"},
                "status": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "UpdateListingRequest": {
            "type": "object",
            "properties": {
                "category": {"type": "string", "maxLength": 64},
                "condition": {"type": "string", "enum": ["new", "excellent", "good", "fair"]},
                "description": {"type": "string", "maxLength": 2000, "minLength": 1},
                "images": {"type": "array", "items": {"type": "string"}},
                "negotiable": {"type": "boolean"},
                "price": {"type": "number"},
                "tags": {"type": "array", "items": {"type": "string"}},
                "title": {"type": "string", "maxLength": 120, "minLength": 1}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{"http", "https"},
	Title:            "ShareBox API",
	Description:      "Secondhand marketplace API: listings, negotiations, and conversations.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
