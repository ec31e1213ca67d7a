package service

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/fulldump/apitest"
	"github.com/fulldump/biff"
)

type JSON = map[string]interface{}

// acceptanceOrders returns 12 orders. Every third one, starting with the
// first, is pending; even positions are paid.
func acceptanceOrders() []JSON {
	statuses := []string{"pending", "shipped", "delivered"}
	orders := []JSON{}
	for i := 0; i < 12; i++ {
		orders = append(orders, JSON{
			"id":        fmt.Sprintf("ord-%02d", i+1),
			"customer":  fmt.Sprintf("customer %d", i+1),
			"email":     fmt.Sprintf("customer%d@example.com", i+1),
			"status":    statuses[i%3],
			"total":     10 * (i + 1),
			"items":     1 + i%4,
			"paid":      i%2 == 0,
			"createdAt": fmt.Sprintf("2024-01-%02dT10:00:00Z", i+1),
		})
	}
	return orders
}

func itemIDs(state interface{}) []interface{} {
	ids := []interface{}{}
	view := state.(JSON)["view"].(JSON)
	for _, item := range view["items"].([]interface{}) {
		ids = append(ids, item.(JSON)["id"])
	}
	return ids
}

func Acceptance(a *biff.A, apiRequest func(method, path string) *apitest.Request) {

	a.Alternative("List screens", func(a *biff.A) {
		resp := apiRequest("GET", "/screens").Do()

		biff.AssertEqual(resp.StatusCode, http.StatusOK)
		names := []interface{}{}
		for _, s := range resp.BodyJson().([]interface{}) {
			names = append(names, s.(JSON)["name"])
		}
		biff.AssertEqual(names, []interface{}{"products", "orders", "users"})
	})

	a.Alternative("Create collection with unknown screen", func(a *biff.A) {
		resp := apiRequest("POST", "/collections").
			WithBodyJson(JSON{"name": "invoices"}).Do()

		biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
	})

	a.Alternative("Open session on unknown collection", func(a *biff.A) {
		resp := apiRequest("POST", "/sessions").
			WithBodyJson(JSON{"collection": "nope"}).Do()

		biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
	})

	a.Alternative("Unknown session", func(a *biff.A) {
		resp := apiRequest("POST", "/sessions/nope:view").Do()

		biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
		biff.AssertEqual(resp.BodyJsonMap()["error"].(JSON)["description"], "session not found")
	})

	a.Alternative("Create collection", func(a *biff.A) {
		resp := apiRequest("POST", "/collections").
			WithBodyJson(JSON{
				"name":   "my-orders",
				"screen": "orders",
			}).Do()

		biff.AssertEqual(resp.StatusCode, http.StatusCreated)
		biff.AssertEqualJson(resp.BodyJson(), JSON{
			"name":   "my-orders",
			"screen": "orders",
			"total":  0,
		})

		a.Alternative("Create twice", func(a *biff.A) {
			resp := apiRequest("POST", "/collections").
				WithBodyJson(JSON{"name": "my-orders", "screen": "orders"}).Do()

			biff.AssertEqual(resp.StatusCode, http.StatusConflict)
		})

		a.Alternative("List collections", func(a *biff.A) {
			resp := apiRequest("GET", "/collections").Do()

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqualJson(resp.BodyJson(), []JSON{
				{"name": "my-orders", "screen": "orders", "total": 0},
			})
		})

		a.Alternative("Drop collection", func(a *biff.A) {
			resp := apiRequest("POST", "/collections/my-orders:dropCollection").Do()
			biff.AssertEqual(resp.StatusCode, http.StatusNoContent)

			resp = apiRequest("GET", "/collections/my-orders").Do()
			biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
		})

		a.Alternative("Insert without identifier", func(a *biff.A) {
			resp := apiRequest("POST", "/collections/my-orders:insert").
				WithBodyJson(JSON{"customer": "nobody"}).Do()

			biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
		})

		a.Alternative("Insert malformed", func(a *biff.A) {
			resp := apiRequest("POST", "/collections/my-orders:insert").
				WithBodyString(`{"id": `).Do()

			biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
		})

		a.Alternative("Insert many", func(a *biff.A) {
			body := ""
			for _, order := range acceptanceOrders() {
				line, _ := json.Marshal(order)
				body += string(line) + "\n"
			}
			resp := apiRequest("POST", "/collections/my-orders:insert").
				WithBodyString(body).Do()

			biff.AssertEqual(resp.StatusCode, http.StatusCreated)
			biff.AssertEqual(len(strings.Split(strings.TrimSpace(resp.BodyString()), "\n")), 12)

			a.Alternative("Retrieve collection", func(a *biff.A) {
				resp := apiRequest("GET", "/collections/my-orders").Do()

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqualJson(resp.BodyJson(), JSON{
					"name":   "my-orders",
					"screen": "orders",
					"total":  12,
				})
			})

			a.Alternative("Insert duplicate", func(a *biff.A) {
				resp := apiRequest("POST", "/collections/my-orders:insert").
					WithBodyJson(JSON{"id": "ord-01"}).Do()

				biff.AssertEqual(resp.StatusCode, http.StatusConflict)
			})

			a.Alternative("Patch", func(a *biff.A) {
				resp := apiRequest("POST", "/collections/my-orders:patch").
					WithBodyJson(JSON{"id": "ord-02", "patch": JSON{"status": "cancelled"}}).Do()

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqual(resp.BodyJsonMap()["status"], "cancelled")
			})

			a.Alternative("Patch identifier", func(a *biff.A) {
				resp := apiRequest("POST", "/collections/my-orders:patch").
					WithBodyJson(JSON{"id": "ord-02", "patch": JSON{"id": "ord-99"}}).Do()

				biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
			})

			a.Alternative("Remove", func(a *biff.A) {
				resp := apiRequest("POST", "/collections/my-orders:remove").
					WithBodyJson(JSON{"id": "ord-02"}).Do()
				biff.AssertEqual(resp.StatusCode, http.StatusOK)

				resp = apiRequest("POST", "/collections/my-orders:remove").
					WithBodyJson(JSON{"id": "ord-02"}).Do()
				biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
			})

			a.Alternative("Open session", func(a *biff.A) {
				resp := apiRequest("POST", "/sessions").
					WithBodyJson(JSON{"collection": "my-orders"}).Do()

				biff.AssertEqual(resp.StatusCode, http.StatusCreated)
				state := resp.BodyJson()
				sessionId := state.(JSON)["id"].(string)
				session := "/sessions/" + sessionId

				biff.AssertEqualJson(state.(JSON)["sort"], JSON{"key": "createdAt", "direction": "desc"})
				biff.AssertEqualJson(state.(JSON)["view"].(JSON)["totalFiltered"], 12)
				biff.AssertEqualJson(state.(JSON)["view"].(JSON)["totalPages"], 2)
				biff.AssertEqual(itemIDs(state)[0], "ord-12")
				biff.AssertEqual(len(itemIDs(state)), 10)

				a.Alternative("Get session", func(a *biff.A) {
					resp := apiRequest("GET", session).Do()

					biff.AssertEqual(resp.StatusCode, http.StatusOK)
					biff.AssertEqual(resp.BodyJsonMap()["collection"], "my-orders")
				})

				a.Alternative("View", func(a *biff.A) {
					resp := apiRequest("POST", session+":view").Do()

					biff.AssertEqual(resp.StatusCode, http.StatusOK)
					biff.AssertEqualJson(resp.BodyJsonMap()["page"], 1)
					biff.AssertEqualJson(resp.BodyJsonMap()["pageSize"], 10)
				})

				a.Alternative("Last page", func(a *biff.A) {
					resp := apiRequest("POST", session+":page").
						WithBodyJson(JSON{"page": 2}).Do()

					biff.AssertEqual(resp.StatusCode, http.StatusOK)
					biff.AssertEqual(itemIDs(resp.BodyJson()), []interface{}{"ord-02", "ord-01"})
				})

				a.Alternative("Page out of range is clamped", func(a *biff.A) {
					resp := apiRequest("POST", session+":page").
						WithBodyJson(JSON{"page": 7}).Do()

					biff.AssertEqual(resp.StatusCode, http.StatusOK)
					biff.AssertEqualJson(resp.BodyJsonMap()["view"].(JSON)["page"], 2)
				})

				a.Alternative("Sort by total", func(a *biff.A) {
					resp := apiRequest("POST", session+":sort").
						WithBodyJson(JSON{"key": "total", "direction": "asc"}).Do()

					biff.AssertEqual(resp.StatusCode, http.StatusOK)
					biff.AssertEqual(itemIDs(resp.BodyJson())[0], "ord-01")
				})

				a.Alternative("Invalid sort direction", func(a *biff.A) {
					resp := apiRequest("POST", session+":sort").
						WithBodyJson(JSON{"key": "total", "direction": "up"}).Do()

					biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
				})

				a.Alternative("Unknown filter", func(a *biff.A) {
					resp := apiRequest("POST", session+":filter").
						WithBodyJson(JSON{"name": "colour", "value": "red"}).Do()

					biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
				})

				a.Alternative("Stats", func(a *biff.A) {
					resp := apiRequest("POST", session+":stats").Do()

					biff.AssertEqual(resp.StatusCode, http.StatusOK)
					biff.AssertEqualJson(resp.BodyJson(), JSON{
						"total":           12,
						"pending":         4,
						"delivered":       4,
						"revenue":         360,
						"filtered":        12,
						"filteredRevenue": 780,
					})
				})

				a.Alternative("Bulk without selection", func(a *biff.A) {
					resp := apiRequest("POST", session+":bulk").
						WithBodyJson(JSON{"action": "delete"}).Do()

					biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
				})

				a.Alternative("Toggle unknown record", func(a *biff.A) {
					resp := apiRequest("POST", session+":toggle").
						WithBodyJson(JSON{"id": "ord-99"}).Do()

					biff.AssertEqual(resp.StatusCode, http.StatusNotFound)

					resp = apiRequest("GET", session).Do()
					biff.AssertEqualJson(resp.BodyJsonMap()["selected"], []string{})
				})

				a.Alternative("Close", func(a *biff.A) {
					resp := apiRequest("POST", session+":close").Do()
					biff.AssertEqual(resp.StatusCode, http.StatusNoContent)

					resp = apiRequest("GET", session).Do()
					biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
				})

				a.Alternative("Filter pending", func(a *biff.A) {
					apiRequest("POST", session+":page").WithBodyJson(JSON{"page": 2}).Do()

					resp := apiRequest("POST", session+":filter").
						WithBodyJson(JSON{"name": "status", "value": "pending"}).Do()

					biff.AssertEqual(resp.StatusCode, http.StatusOK)
					state := resp.BodyJson()
					biff.AssertEqualJson(state.(JSON)["filters"], JSON{"status": "pending"})
					biff.AssertEqualJson(state.(JSON)["view"].(JSON)["page"], 1)
					biff.AssertEqual(itemIDs(state), []interface{}{"ord-10", "ord-07", "ord-04", "ord-01"})

					a.Alternative("Clear filters", func(a *biff.A) {
						resp := apiRequest("POST", session+":clearFilters").Do()

						biff.AssertEqualJson(resp.BodyJsonMap()["view"].(JSON)["totalFiltered"], 12)
					})

					a.Alternative("Remove filter with null", func(a *biff.A) {
						resp := apiRequest("POST", session+":filter").
							WithBodyJson(JSON{"name": "status", "value": nil}).Do()

						biff.AssertEqualJson(resp.BodyJsonMap()["filters"], JSON{})
						biff.AssertEqualJson(resp.BodyJsonMap()["view"].(JSON)["totalFiltered"], 12)
					})

					a.Alternative("Select all", func(a *biff.A) {
						resp := apiRequest("POST", session+":selectAll").Do()

						biff.AssertEqual(resp.StatusCode, http.StatusOK)
						biff.AssertEqualJson(resp.BodyJsonMap()["selected"], []string{"ord-01", "ord-04", "ord-07", "ord-10"})
						biff.AssertEqual(resp.BodyJsonMap()["allVisibleSelected"], true)

						a.Alternative("Toggle one off", func(a *biff.A) {
							resp := apiRequest("POST", session+":toggle").
								WithBodyJson(JSON{"id": "ord-04"}).Do()

							biff.AssertEqualJson(resp.BodyJsonMap()["selected"], []string{"ord-01", "ord-07", "ord-10"})
							biff.AssertEqual(resp.BodyJsonMap()["allVisibleSelected"], false)
						})

						a.Alternative("Toggle all off", func(a *biff.A) {
							resp := apiRequest("POST", session+":toggleAll").Do()

							biff.AssertEqualJson(resp.BodyJsonMap()["selected"], []string{})
						})

						a.Alternative("Selection survives filter changes", func(a *biff.A) {
							resp := apiRequest("POST", session+":clearFilters").Do()

							biff.AssertEqualJson(resp.BodyJsonMap()["selected"], []string{"ord-01", "ord-04", "ord-07", "ord-10"})
							biff.AssertEqual(resp.BodyJsonMap()["allVisibleSelected"], false)
						})

						a.Alternative("Clear selection", func(a *biff.A) {
							resp := apiRequest("POST", session+":clearSelection").Do()

							biff.AssertEqualJson(resp.BodyJsonMap()["selected"], []string{})
						})

						a.Alternative("Bulk status", func(a *biff.A) {
							resp := apiRequest("POST", session+":bulk").
								WithBodyJson(JSON{"action": "status", "value": "shipped"}).Do()

							biff.AssertEqual(resp.StatusCode, http.StatusOK)
							result := resp.BodyJsonMap()
							biff.AssertEqualJson(result["affected"], 4)
							state := result["state"].(JSON)
							biff.AssertEqualJson(state["selected"], []string{})
							biff.AssertEqualJson(state["view"].(JSON)["totalFiltered"], 0)
							biff.AssertEqualJson(state["view"].(JSON)["totalPages"], 1)
						})

						a.Alternative("Bulk invalid status", func(a *biff.A) {
							resp := apiRequest("POST", session+":bulk").
								WithBodyJson(JSON{"action": "status", "value": "lost"}).Do()

							biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)

							resp = apiRequest("GET", session).Do()
							biff.AssertEqualJson(resp.BodyJsonMap()["selected"], []string{"ord-01", "ord-04", "ord-07", "ord-10"})
						})

						a.Alternative("Bulk unknown action", func(a *biff.A) {
							resp := apiRequest("POST", session+":bulk").
								WithBodyJson(JSON{"action": "archive"}).Do()

							biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
						})

						a.Alternative("Bulk export", func(a *biff.A) {
							resp := apiRequest("POST", session+":bulk").
								WithBodyJson(JSON{"action": "export"}).Do()

							biff.AssertEqual(resp.StatusCode, http.StatusOK)
							result := resp.BodyJsonMap()
							biff.AssertEqualJson(result["affected"], 4)
							biff.AssertEqual(len(result["items"].([]interface{})), 4)
						})

						a.Alternative("Bulk delete", func(a *biff.A) {
							resp := apiRequest("POST", session+":bulk").
								WithBodyJson(JSON{"action": "delete"}).Do()

							biff.AssertEqual(resp.StatusCode, http.StatusOK)
							biff.AssertEqualJson(resp.BodyJsonMap()["affected"], 4)

							resp = apiRequest("GET", "/collections/my-orders").Do()
							biff.AssertEqualJson(resp.BodyJsonMap()["total"], 8)
						})
					})
				})

				a.Alternative("Refresh", func(a *biff.A) {
					apiRequest("POST", session+":toggle").WithBodyJson(JSON{"id": "ord-03"}).Do()
					apiRequest("POST", "/collections/my-orders:insert").
						WithBodyJson(JSON{"id": "ord-13", "status": "pending", "total": 5, "createdAt": "2024-02-01"}).Do()

					resp := apiRequest("POST", session+":refresh").Do()

					biff.AssertEqual(resp.StatusCode, http.StatusOK)
					state := resp.BodyJson()
					biff.AssertEqualJson(state.(JSON)["view"].(JSON)["totalFiltered"], 13)
					biff.AssertEqual(itemIDs(state)[0], "ord-13")
					biff.AssertEqualJson(state.(JSON)["selected"], []string{})
				})
			})
		})
	})
}
