package migrations

import (
	"encoding/json"

	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		jsonData := `{
			"id": "a5w1n7kd3zp9xce",
			"name": "admins",
			"type": "base",
			"system": false,
			"listRule": null,
			"viewRule": null,
			"createRule": null,
			"updateRule": null,
			"deleteRule": null,
			"fields": [
				{
					"id": "email_adm_email",
					"name": "email",
					"type": "email",
					"required": true
				},
				{
					"id": "text_adm_name",
					"name": "name",
					"type": "text",
					"required": false,
					"max": 200
				},
				{
					"id": "autodate_adm_created",
					"name": "created",
					"type": "autodate",
					"onCreate": true,
					"onUpdate": false
				}
			],
			"indexes": [
				"CREATE UNIQUE INDEX idx_admins_email ON admins (email)"
			]
		}`

		collection := &core.Collection{}
		if err := json.Unmarshal([]byte(jsonData), &collection); err != nil {
			return err
		}

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("a5w1n7kd3zp9xce")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}
