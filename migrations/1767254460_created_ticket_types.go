package migrations

import (
	"encoding/json"

	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		jsonData := `{
			"id": "y8c4t6hn2rd5mkw",
			"name": "ticket_types",
			"type": "base",
			"system": false,
			"listRule": "",
			"viewRule": "",
			"createRule": null,
			"updateRule": null,
			"deleteRule": null,
			"fields": [
				{
					"id": "relation_tt_event",
					"name": "event_id",
					"type": "relation",
					"required": true,
					"maxSelect": 1,
					"collectionId": "e7k2m9qp4wx1zbn",
					"cascadeDelete": true
				},
				{
					"id": "text_tt_name",
					"name": "name",
					"type": "text",
					"required": true,
					"max": 200
				},
				{
					"id": "select_tt_category",
					"name": "category",
					"type": "select",
					"required": true,
					"maxSelect": 1,
					"values": ["SILVER", "SILVER PLUS", "GOLD", "GOLD PLUS", "DIAMOND", "PLATINUM"]
				},
				{
					"id": "number_tt_price",
					"name": "price",
					"type": "number",
					"required": true,
					"min": 0
				},
				{
					"id": "json_tt_features",
					"name": "features",
					"type": "json",
					"required": false
				},
				{
					"id": "autodate_tt_created",
					"name": "created",
					"type": "autodate",
					"onCreate": true,
					"onUpdate": false
				}
			],
			"indexes": [
				"CREATE INDEX idx_ticket_types_event_id ON ticket_types (event_id)"
			]
		}`

		collection := &core.Collection{}
		if err := json.Unmarshal([]byte(jsonData), &collection); err != nil {
			return err
		}

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("y8c4t6hn2rd5mkw")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}
