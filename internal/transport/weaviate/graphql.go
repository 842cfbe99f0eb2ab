package weaviate

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/weaviate/weaviate-go-client/v5/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"

	"github.com/raywlfun/WeaviateDBCluster/internal/domain"
	"github.com/raywlfun/WeaviateDBCluster/internal/domain/property"
)

// graphqlData returns the data document of a GraphQL response. GraphQL
// reports query errors with status 200 and an errors list.
func graphqlData(op string, resp *models.GraphQLResponse) (gjson.Result, error) {
	if resp == nil {
		return gjson.Result{}, &domain.RemoteError{Op: op, StatusCode: http.StatusOK, Message: "empty graphql response"}
	}
	if len(resp.Errors) > 0 {
		msgs := make([]string, 0, len(resp.Errors))
		for _, e := range resp.Errors {
			if e != nil {
				msgs = append(msgs, e.Message)
			}
		}
		return gjson.Result{}, &domain.RemoteError{Op: op, StatusCode: http.StatusOK, Message: strings.Join(msgs, "; ")}
	}
	raw, err := json.Marshal(resp.Data)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%s: encode graphql data: %w", op, err)
	}
	return gjson.ParseBytes(raw), nil
}

// selectFields lists the GraphQL selection for props. Nested objects and
// cross-references are left out; geo and phone values select their sub-fields.
func selectFields(props []*models.Property) []graphql.Field {
	fields := make([]graphql.Field, 0, len(props))
	for _, p := range props {
		if p == nil {
			continue
		}
		tag := property.Derive(p.DataType)
		switch {
		case tag.Elem() == property.Object, tag.IsReference():
			continue
		case tag == property.GeoCoordinates:
			fields = append(fields, graphql.Field{Name: p.Name, Fields: []graphql.Field{{Name: "latitude"}, {Name: "longitude"}}})
		case tag == property.PhoneNumber:
			fields = append(fields, graphql.Field{Name: p.Name, Fields: []graphql.Field{{Name: "input"}, {Name: "internationalFormatted"}}})
		default:
			fields = append(fields, graphql.Field{Name: p.Name})
		}
	}
	return fields
}

func additional(names ...string) graphql.Field {
	sub := make([]graphql.Field, len(names))
	for i, n := range names {
		sub[i] = graphql.Field{Name: n}
	}
	return graphql.Field{Name: "_additional", Fields: sub}
}
