package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ff-agent/server/internal/agent/model"
	errx "github.com/ff-agent/server/internal/core/error"
	logx "github.com/ff-agent/server/pkg/logger"
)

const searchQuery = `
query SearchProducts($q: String!, $first: Int!) {
  products(first: $first, query: $q, sortKey: UPDATED_AT, reverse: true) {
    edges {
      node {
        title
        handle
        availableForSale
        priceRange {
          minVariantPrice { amount currencyCode }
        }
      }
    }
  }
}
`

const latestQuery = `
query LatestProducts($first: Int!) {
  products(first: $first, sortKey: UPDATED_AT, reverse: true) {
    edges {
      node {
        title
        handle
        availableForSale
        priceRange {
          minVariantPrice { amount currencyCode }
        }
      }
    }
  }
}
`

// Client talks to the Shopify Storefront GraphQL API. Keyword search matches
// title, product type and tags sorted by most recently updated; an empty
// keyword (or a keyword with no hits) falls back to the newest products.
type Client struct {
	endpoint   string
	token      string
	productURL string
	httpClient *http.Client
}

func NewClient(cfg model.StorefrontConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Client{
		endpoint:   fmt.Sprintf("https://%s/api/%s/graphql.json", cfg.Domain, cfg.APIVersion),
		token:      cfg.Token,
		productURL: fmt.Sprintf("https://%s/products/", cfg.Domain),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type productNode struct {
	Title            string `json:"title"`
	Handle           string `json:"handle"`
	AvailableForSale bool   `json:"availableForSale"`
	PriceRange       struct {
		MinVariantPrice struct {
			Amount       string `json:"amount"`
			CurrencyCode string `json:"currencyCode"`
		} `json:"minVariantPrice"`
	} `json:"priceRange"`
}

type graphqlResponse struct {
	Data struct {
		Products struct {
			Edges []struct {
				Node productNode `json:"node"`
			} `json:"edges"`
		} `json:"products"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Search implements model.ProductSearcher.
func (c *Client) Search(ctx context.Context, keyword string, limit int) ([]model.Product, error) {
	keyword = strings.TrimSpace(keyword)

	var results []model.Product
	if keyword != "" {
		q := fmt.Sprintf("title:*%s* OR product_type:*%s* OR tag:*%s*", keyword, keyword, keyword)
		nodes, err := c.query(ctx, searchQuery, map[string]any{"q": q, "first": limit})
		if err != nil {
			return nil, err
		}
		results = c.toProducts(nodes)
	}

	// no keyword, or keyword search came back empty: newest products
	if len(results) == 0 {
		nodes, err := c.query(ctx, latestQuery, map[string]any{"first": limit})
		if err != nil {
			return nil, err
		}
		results = c.toProducts(nodes)
	}

	return results, nil
}

func (c *Client) query(ctx context.Context, query string, variables map[string]any) ([]productNode, error) {
	body, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("marshal storefront request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build storefront request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Storefront-Access-Token", c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logx.Error().Err(err).Str("endpoint", c.endpoint).Msg("storefront request failed")
		return nil, errx.WrapCatalog(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		logx.Error().Int("status", resp.StatusCode).Str("body", string(snippet)).Msg("storefront returned non-200")
		return nil, errx.WrapCatalog(fmt.Errorf("storefront status %d", resp.StatusCode))
	}

	var parsed graphqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, errx.WrapCatalog(fmt.Errorf("decode storefront response: %w", err))
	}
	if len(parsed.Errors) > 0 {
		msgs := make([]string, 0, len(parsed.Errors))
		for _, e := range parsed.Errors {
			msgs = append(msgs, e.Message)
		}
		return nil, errx.WrapCatalog(fmt.Errorf("storefront graphql errors: %s", strings.Join(msgs, "; ")))
	}

	nodes := make([]productNode, 0, len(parsed.Data.Products.Edges))
	for _, e := range parsed.Data.Products.Edges {
		nodes = append(nodes, e.Node)
	}
	return nodes, nil
}

func (c *Client) toProducts(nodes []productNode) []model.Product {
	out := make([]model.Product, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, model.Product{
			Title:     n.Title,
			Handle:    n.Handle,
			Available: n.AvailableForSale,
			Price:     fmt.Sprintf("%s %s", n.PriceRange.MinVariantPrice.Amount, n.PriceRange.MinVariantPrice.CurrencyCode),
			URL:       c.productURL + n.Handle,
		})
	}
	return out
}

var _ model.ProductSearcher = (*Client)(nil)
