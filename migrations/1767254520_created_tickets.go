package migrations

import (
	"encoding/json"

	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		jsonData := `{
			"id": "t3f8r2vy6mq0ahs",
			"name": "tickets",
			"type": "base",
			"system": false,
			"listRule": null,
			"viewRule": null,
			"createRule": null,
			"updateRule": null,
			"deleteRule": null,
			"fields": [
				{
					"id": "text_tkt_ticket_id",
					"name": "ticket_id",
					"type": "text",
					"required": true,
					"max": 100
				},
				{
					"id": "text_tkt_serial",
					"name": "serial_number",
					"type": "text",
					"required": false,
					"max": 50
				},
				{
					"id": "text_tkt_name",
					"name": "name",
					"type": "text",
					"required": true,
					"max": 200
				},
				{
					"id": "email_tkt_email",
					"name": "email",
					"type": "email",
					"required": true
				},
				{
					"id": "text_tkt_phone",
					"name": "phone",
					"type": "text",
					"required": false,
					"max": 30
				},
				{
					"id": "select_tkt_category",
					"name": "category",
					"type": "select",
					"required": true,
					"maxSelect": 1,
					"values": ["SILVER", "SILVER PLUS", "GOLD", "GOLD PLUS", "DIAMOND", "PLATINUM"]
				},
				{
					"id": "relation_tkt_event",
					"name": "event_id",
					"type": "relation",
					"required": true,
					"maxSelect": 1,
					"collectionId": "e7k2m9qp4wx1zbn",
					"cascadeDelete": false
				},
				{
					"id": "text_tkt_seat",
					"name": "seat_number",
					"type": "text",
					"required": false,
					"max": 20
				},
				{
					"id": "select_tkt_status",
					"name": "status",
					"type": "select",
					"required": true,
					"maxSelect": 1,
					"values": ["CONFIRMED", "USED"]
				},
				{
					"id": "bool_tkt_sent",
					"name": "ticket_sent",
					"type": "bool",
					"required": false
				},
				{
					"id": "url_tkt_pdf",
					"name": "ticket_pdf_url",
					"type": "url",
					"required": false
				},
				{
					"id": "number_tkt_price",
					"name": "price",
					"type": "number",
					"required": false,
					"min": 0
				},
				{
					"id": "autodate_tkt_created",
					"name": "created",
					"type": "autodate",
					"onCreate": true,
					"onUpdate": false
				},
				{
					"id": "autodate_tkt_updated",
					"name": "updated",
					"type": "autodate",
					"onCreate": true,
					"onUpdate": true
				}
			],
			"indexes": [
				"CREATE UNIQUE INDEX idx_tickets_ticket_id ON tickets (ticket_id)",
				"CREATE INDEX idx_tickets_event_id ON tickets (event_id)",
				"CREATE INDEX idx_tickets_status ON tickets (status)"
			]
		}`

		collection := &core.Collection{}
		if err := json.Unmarshal([]byte(jsonData), &collection); err != nil {
			return err
		}

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("t3f8r2vy6mq0ahs")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}
