package migrations

import (
	"encoding/json"

	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		jsonData := `{
			"id": "e7k2m9qp4wx1zbn",
			"name": "events",
			"type": "base",
			"system": false,
			"listRule": "",
			"viewRule": "",
			"createRule": null,
			"updateRule": null,
			"deleteRule": null,
			"fields": [
				{
					"id": "text_evt_name",
					"name": "name",
					"type": "text",
					"required": true,
					"max": 200
				},
				{
					"id": "text_evt_location",
					"name": "location",
					"type": "text",
					"required": false,
					"max": 300
				},
				{
					"id": "text_evt_date",
					"name": "date",
					"type": "text",
					"required": false,
					"max": 50
				},
				{
					"id": "text_evt_start",
					"name": "start_time",
					"type": "text",
					"required": false,
					"max": 50
				},
				{
					"id": "text_evt_end",
					"name": "end_time",
					"type": "text",
					"required": false,
					"max": 50
				},
				{
					"id": "text_evt_entry",
					"name": "entry_time",
					"type": "text",
					"required": false,
					"max": 50
				},
				{
					"id": "text_evt_desc",
					"name": "description",
					"type": "text",
					"required": false,
					"max": 2000
				},
				{
					"id": "text_evt_artists",
					"name": "featured_artists",
					"type": "text",
					"required": false,
					"max": 1000
				},
				{
					"id": "autodate_evt_created",
					"name": "created",
					"type": "autodate",
					"onCreate": true,
					"onUpdate": false
				},
				{
					"id": "autodate_evt_updated",
					"name": "updated",
					"type": "autodate",
					"onCreate": true,
					"onUpdate": true
				}
			],
			"indexes": []
		}`

		collection := &core.Collection{}
		if err := json.Unmarshal([]byte(jsonData), &collection); err != nil {
			return err
		}

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("e7k2m9qp4wx1zbn")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}
