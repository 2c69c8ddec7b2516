// Package docs contiene la especificación OpenAPI servida en /docs.
// Regenerar con: swag init -g cmd/api/main.go -o docs
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
        "/api/invoices": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["invoices"],
                "summary": "Registrar factura",
                "parameters": [{"description": "factura", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.InvoiceRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.InvoiceResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/invoices/preview": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["invoices"],
                "summary": "Calcular montos de una factura sin guardarla",
                "parameters": [
                    {"type": "string", "description": "factura en edición", "name": "invoice_id", "in": "query"},
                    {"description": "borrador de factura", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.InvoiceRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.InvoicePreviewResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/invoices/recompute": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["invoices"],
                "summary": "Recalcular y guardar el estado de las facturas",
                "parameters": [{"description": "IDs de facturas", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.RecomputeRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.RecomputeResponse"}}}
            }
        },
        "/api/invoices/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["invoices"],
                "summary": "Obtener factura con pagado, saldo y días al vencimiento",
                "parameters": [{"type": "string", "description": "ID de la factura", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.InvoiceResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["invoices"],
                "summary": "Editar factura",
                "parameters": [
                    {"type": "string", "description": "ID de la factura", "name": "id", "in": "path", "required": true},
                    {"description": "factura", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.InvoiceRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.InvoiceResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["invoices"],
                "summary": "Eliminar factura sin pagos",
                "parameters": [{"type": "string", "description": "ID de la factura", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/invoices/{id}/payment-suggestion": {
            "get": {
                "produces": ["application/json"],
                "tags": ["invoices"],
                "summary": "Línea de pago sugerida por el saldo pendiente",
                "parameters": [{"type": "string", "description": "ID de la factura", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.PaymentSuggestionResponse"}}}
            }
        },
        "/api/payments": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["payments"],
                "summary": "Registrar pago (una o varias facturas)",
                "parameters": [{"description": "pago con sus líneas", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.PaymentRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.PaymentResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/payments/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["payments"],
                "summary": "Obtener pago",
                "parameters": [{"type": "string", "description": "ID del pago", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.PaymentResponse"}}}
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["payments"],
                "summary": "Editar pago",
                "parameters": [
                    {"type": "string", "description": "ID del pago", "name": "id", "in": "path", "required": true},
                    {"description": "pago con sus líneas", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.PaymentRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.PaymentResponse"}}}
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["payments"],
                "summary": "Eliminar pago",
                "parameters": [{"type": "string", "description": "ID del pago", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.RecomputeResponse"}}}
            }
        },
        "/api/payments/{id}/liquidated": {
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["payments"],
                "summary": "Marcar pago posfechado como liquidado",
                "parameters": [
                    {"type": "string", "description": "ID del pago", "name": "id", "in": "path", "required": true},
                    {"description": "liquidated", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.SetLiquidatedRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.PaymentResponse"}}}
            }
        },
        "/api/purchase-orders/{id}/aggregate": {
            "get": {
                "produces": ["application/json"],
                "tags": ["purchase-orders"],
                "summary": "Valor, entregado y saldo de una orden de compra",
                "parameters": [{"type": "string", "description": "ID de la orden", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.POAggregateResponse"}}}
            }
        },
        "/api/purchase-orders/{id}/available-grns": {
            "get": {
                "produces": ["application/json"],
                "tags": ["purchase-orders"],
                "summary": "GRNs de la orden que aún no están facturados",
                "parameters": [
                    {"type": "string", "description": "ID de la orden", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "factura en edición", "name": "invoice_id", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.GRNResponse"}}}}
            }
        },
        "/api/projects/{id}/invoices": {
            "get": {
                "produces": ["application/json"],
                "tags": ["invoices"],
                "summary": "Listar facturas de una obra",
                "parameters": [
                    {"type": "string", "description": "ID de la obra", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "name": "limit", "in": "query"},
                    {"type": "integer", "name": "offset", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.InvoiceListResponse"}}}
            }
        },
        "/api/projects/{id}/summary": {
            "get": {
                "produces": ["application/json"],
                "tags": ["summaries"],
                "summary": "Resumen de la obra y de cada proveedor",
                "parameters": [{"type": "string", "description": "ID de la obra", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ProjectSummaryResponse"}}}
            }
        },
        "/api/projects/{id}/suppliers/{supplierId}/summary": {
            "get": {
                "produces": ["application/json"],
                "tags": ["summaries"],
                "summary": "Resumen de un proveedor en una obra",
                "parameters": [
                    {"type": "string", "description": "ID de la obra", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "ID del proveedor", "name": "supplierId", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SupplierSummaryResponse"}}}
            }
        },
        "/api/projects/{id}/suppliers/{supplierId}/statement.pdf": {
            "get": {
                "produces": ["application/pdf"],
                "tags": ["summaries"],
                "summary": "Estado de cuenta del proveedor en PDF",
                "parameters": [
                    {"type": "string", "description": "ID de la obra", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "ID del proveedor", "name": "supplierId", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "file"}}}
            }
        }
    },
    "definitions": {
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "details": {"type": "array", "items": {"$ref": "#/definitions/dto.ViolationEntry"}}
            }
        },
        "dto.ViolationEntry": {
            "type": "object",
            "properties": {"reason": {"type": "string"}, "field": {"type": "string"}, "message": {"type": "string"}}
        },
        "dto.InvoiceRequest": {
            "type": "object",
            "properties": {
                "project_id": {"type": "string"},
                "supplier_id": {"type": "string"},
                "party_kind": {"type": "string", "enum": ["supplier", "subcontractor"]},
                "invoice_number": {"type": "string"},
                "invoice_date": {"type": "string", "example": "2024-02-01"},
                "due_date": {"type": "string"},
                "payment_type": {"type": "string", "enum": ["DownPayment", "Advance", "ProgressPayment", "RetentionRelease"]},
                "purchase_order_id": {"type": "string"},
                "grn_ids": {"type": "array", "items": {"type": "string"}},
                "change_order_ids": {"type": "array", "items": {"type": "string"}},
                "advance_amount": {"type": "string"},
                "base_amount": {"type": "string"},
                "down_payment_recovery": {"type": "string"},
                "advance_recovery": {"type": "string"},
                "retention": {"type": "string"},
                "contra_charges_amount": {"type": "string"},
                "contra_charges_description": {"type": "string"},
                "vat_amount": {"type": "string"}
            }
        },
        "dto.DeductionsDTO": {
            "type": "object",
            "properties": {
                "down_payment_recovery": {"type": "string"},
                "advance_recovery": {"type": "string"},
                "retention": {"type": "string"},
                "contra_charges": {"type": "string"},
                "total": {"type": "string"}
            }
        },
        "dto.InvoicePreviewResponse": {
            "type": "object",
            "properties": {
                "invoice_amount": {"type": "string"},
                "deductions": {"$ref": "#/definitions/dto.DeductionsDTO"},
                "net_amount": {"type": "string"},
                "vat_percent": {"type": "string"},
                "vat_amount": {"type": "string"},
                "total_amount": {"type": "string"}
            }
        },
        "dto.InvoiceResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "project_id": {"type": "string"},
                "supplier_id": {"type": "string"},
                "party_kind": {"type": "string"},
                "invoice_number": {"type": "string"},
                "invoice_date": {"type": "string"},
                "due_date": {"type": "string"},
                "payment_type": {"type": "string"},
                "purchase_order_id": {"type": "string"},
                "grn_ids": {"type": "array", "items": {"type": "string"}},
                "change_order_ids": {"type": "array", "items": {"type": "string"}},
                "invoice_amount": {"type": "string"},
                "deductions": {"$ref": "#/definitions/dto.DeductionsDTO"},
                "contra_charges_description": {"type": "string"},
                "net_amount": {"type": "string"},
                "vat_amount": {"type": "string"},
                "total_amount": {"type": "string"},
                "total_paid": {"type": "string"},
                "balance": {"type": "string"},
                "status": {"type": "string", "enum": ["paid", "partially_paid", "unpaid"]},
                "due_days": {"type": "integer"}
            }
        },
        "dto.InvoiceListResponse": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/dto.InvoiceResponse"}},
                "limit": {"type": "integer"},
                "offset": {"type": "integer"},
                "total": {"type": "integer"}
            }
        },
        "dto.PaymentLineRequest": {
            "type": "object",
            "properties": {"invoice_id": {"type": "string"}, "payment_amount": {"type": "string"}, "vat_amount": {"type": "string"}}
        },
        "dto.PaymentRequest": {
            "type": "object",
            "properties": {
                "project_id": {"type": "string"},
                "supplier_id": {"type": "string"},
                "payment_method": {"type": "string", "enum": ["CurrentDated", "PostDated"]},
                "instrument_type": {"type": "string", "enum": ["PDC", "LC", "TrustReceipt"]},
                "payment_date": {"type": "string"},
                "due_date": {"type": "string"},
                "liquidated": {"type": "boolean"},
                "lines": {"type": "array", "items": {"$ref": "#/definitions/dto.PaymentLineRequest"}}
            }
        },
        "dto.PaymentLineResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "invoice_id": {"type": "string"},
                "payment_amount": {"type": "string"},
                "vat_amount": {"type": "string"}
            }
        },
        "dto.PaymentResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "project_id": {"type": "string"},
                "supplier_id": {"type": "string"},
                "payment_method": {"type": "string"},
                "instrument_type": {"type": "string"},
                "payment_date": {"type": "string"},
                "due_date": {"type": "string"},
                "liquidated": {"type": "boolean"},
                "total_payment_amount": {"type": "string"},
                "total_vat_amount": {"type": "string"},
                "lines": {"type": "array", "items": {"$ref": "#/definitions/dto.PaymentLineResponse"}},
                "invoice_statuses": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "dto.SetLiquidatedRequest": {
            "type": "object",
            "properties": {"liquidated": {"type": "boolean"}}
        },
        "dto.PaymentSuggestionResponse": {
            "type": "object",
            "properties": {
                "invoice_id": {"type": "string"},
                "remaining": {"type": "string"},
                "payment_amount": {"type": "string"},
                "vat_amount": {"type": "string"}
            }
        },
        "dto.POAggregateResponse": {
            "type": "object",
            "properties": {
                "purchase_order_id": {"type": "string"},
                "lpo_number": {"type": "string"},
                "vat_percent": {"type": "string"},
                "lpo_value": {"type": "string"},
                "lpo_value_with_vat": {"type": "string"},
                "delivered_base": {"type": "string"},
                "delivered_with_vat": {"type": "string"},
                "lpo_balance_with_vat": {"type": "string"}
            }
        },
        "dto.GRNResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "purchase_order_id": {"type": "string"},
                "grn_ref_no": {"type": "string"},
                "grn_date": {"type": "string"},
                "delivered_amount": {"type": "string"}
            }
        },
        "dto.SummaryResponse": {
            "type": "object",
            "properties": {
                "total_po_amounts": {"type": "string"},
                "total_po_base": {"type": "string"},
                "total_delivered": {"type": "string"},
                "lpo_balance": {"type": "string"},
                "total_invoiced": {"type": "string"},
                "total_paid": {"type": "string"},
                "committed_payments": {"type": "string"},
                "balance_to_be_paid": {"type": "string"},
                "due_amount": {"type": "string"}
            }
        },
        "dto.SupplierSummaryResponse": {
            "type": "object",
            "properties": {
                "project_id": {"type": "string"},
                "supplier_id": {"type": "string"},
                "supplier_name": {"type": "string"},
                "party_kind": {"type": "string"},
                "summary": {"$ref": "#/definitions/dto.SummaryResponse"}
            }
        },
        "dto.ProjectSummaryResponse": {
            "type": "object",
            "properties": {
                "project_id": {"type": "string"},
                "project_name": {"type": "string"},
                "summary": {"$ref": "#/definitions/dto.SummaryResponse"},
                "suppliers": {"type": "array", "items": {"$ref": "#/definitions/dto.SupplierSummaryResponse"}}
            }
        },
        "dto.RecomputeRequest": {
            "type": "object",
            "properties": {"invoice_ids": {"type": "array", "items": {"type": "string"}}}
        },
        "dto.RecomputeResponse": {
            "type": "object",
            "properties": {"statuses": {"type": "object", "additionalProperties": {"type": "string"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Obras API",
	Description:      "Libro de proveedores y subcontratistas por obra: facturas, pagos y resúmenes.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
