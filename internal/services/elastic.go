package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"tienda_back_end/internal/models"
)

const productIndex = "products"

// IndexProduct indexa un producto en Elasticsearch. Se llama en background
// al crear o actualizar: si Elastic está caído solo se pierde la búsqueda.
func IndexProduct(client *elasticsearch.Client, p models.Product) {
	if client == nil {
		log.Println("⚠️ Elastic no inicializado, no se indexa:", p.Name)
		return
	}

	data, _ := json.Marshal(p)
	req := esapi.IndexRequest{
		Index:      productIndex,
		DocumentID: p.ID.String(),
		Body:       bytes.NewReader(data),
		Refresh:    "true",
	}

	res, err := req.Do(context.Background(), client)
	if err != nil {
		log.Println("❌ Error enviando a Elastic:", err)
		return
	}
	defer res.Body.Close()

	if res.IsError() {
		log.Printf("⚠️ Elastic devolvió error para %s: %s", p.Name, res.String())
	} else {
		log.Printf("✅ Producto indexado en Elasticsearch: %s", p.Name)
	}
}

// SearchProducts busca por nombre, descripción o tags con multi_match.
func SearchProducts(client *elasticsearch.Client, query string) ([]map[string]interface{}, error) {
	if client == nil {
		return nil, errors.New("cliente Elasticsearch no inicializado")
	}

	var buf bytes.Buffer
	q := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"name", "description", "tags"},
			},
		},
	}

	if err := json.NewEncoder(&buf).Encode(q); err != nil {
		return nil, fmt.Errorf("error codificando consulta: %v", err)
	}

	req := esapi.SearchRequest{
		Index: []string{productIndex},
		Body:  &buf,
	}
	res, err := req.Do(context.Background(), client)
	if err != nil {
		return nil, fmt.Errorf("error consultando Elastic: %v", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		var e map[string]interface{}
		json.NewDecoder(res.Body).Decode(&e)
		log.Printf("❌ Error de Elasticsearch: %+v", e)
		return nil, errors.New("índice no encontrado o vacío")
	}

	var r map[string]interface{}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("error decodificando JSON: %v", err)
	}

	hitsData, ok := r["hits"].(map[string]interface{})
	if !ok {
		return nil, errors.New("respuesta de Elastic inválida (sin hits)")
	}

	hitsArray, ok := hitsData["hits"].([]interface{})
	if !ok {
		return nil, errors.New("sin resultados")
	}

	results := make([]map[string]interface{}, 0, len(hitsArray))
	for _, hit := range hitsArray {
		hitMap, _ := hit.(map[string]interface{})
		if source, ok := hitMap["_source"].(map[string]interface{}); ok {
			results = append(results, source)
		}
	}

	return results, nil
}
