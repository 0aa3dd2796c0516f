package service

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strings"

	"github.com/templui/storefront/internal/markdown"
	"github.com/templui/storefront/internal/model"
)

type productMeta struct {
	Name  string             `yaml:"name"`
	Price markdown.StrictInt `yaml:"price"`
	Order int                `yaml:"order"`
}

type planMeta struct {
	Name     string `yaml:"name"`
	Interval string `yaml:"interval"`
	PriceID  string `yaml:"price_id"`
	Order    int    `yaml:"order"`
}

// PriceResolver returns the configured provider price for a plan slug.
type PriceResolver func(slug string) string

// CatalogService serves the products and plans shown on the storefront.
// Content is parsed once at construction.
type CatalogService struct {
	products []*model.Product
	plans    []*model.Plan
}

func NewCatalogService(content fs.FS, resolvePrice PriceResolver) (*CatalogService, error) {
	parser := markdown.NewParser()

	products, err := loadProducts(content, parser)
	if err != nil {
		return nil, err
	}

	plans, err := loadPlans(content, parser, resolvePrice)
	if err != nil {
		return nil, err
	}

	slog.Info("catalog loaded", "products", len(products), "plans", len(plans))

	return &CatalogService{
		products: products,
		plans:    plans,
	}, nil
}

func (s *CatalogService) Products() []*model.Product {
	return s.products
}

func (s *CatalogService) Plans() []*model.Plan {
	return s.plans
}

func loadProducts(content fs.FS, parser *markdown.Parser) ([]*model.Product, error) {
	files, err := fs.Glob(content, "content/products/*.md")
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	var products []*model.Product
	for _, file := range files {
		source, err := fs.ReadFile(content, file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}

		var meta productMeta
		html, err := parser.Parse(source, &meta)
		if err != nil {
			slog.Warn("catalog product skipped", "file", file, "error", err)
			continue
		}

		name := strings.TrimSpace(meta.Name)
		if name == "" || meta.Price <= 0 {
			slog.Warn("catalog product skipped", "file", file, "name", name, "price", meta.Price)
			continue
		}

		products = append(products, &model.Product{
			Slug:            slugOf(file),
			Name:            name,
			Price:           int64(meta.Price),
			Order:           meta.Order,
			DescriptionHTML: string(html),
		})
	}

	sort.SliceStable(products, func(i, j int) bool {
		if products[i].Order != products[j].Order {
			return products[i].Order < products[j].Order
		}
		return products[i].Name < products[j].Name
	})

	return products, nil
}

func loadPlans(content fs.FS, parser *markdown.Parser, resolvePrice PriceResolver) ([]*model.Plan, error) {
	files, err := fs.Glob(content, "content/plans/*.md")
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}

	var plans []*model.Plan
	for _, file := range files {
		source, err := fs.ReadFile(content, file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}

		var meta planMeta
		html, err := parser.Parse(source, &meta)
		if err != nil {
			slog.Warn("catalog plan skipped", "file", file, "error", err)
			continue
		}

		slug := slugOf(file)
		priceID := ""
		if resolvePrice != nil {
			priceID = resolvePrice(slug)
		}
		if priceID == "" {
			priceID = strings.TrimSpace(meta.PriceID)
		}
		if priceID == "" {
			slog.Warn("catalog plan skipped, no price configured", "plan", slug)
			continue
		}

		plans = append(plans, &model.Plan{
			Slug:            slug,
			Name:            strings.TrimSpace(meta.Name),
			Interval:        meta.Interval,
			PriceID:         priceID,
			Order:           meta.Order,
			DescriptionHTML: string(html),
		})
	}

	sort.SliceStable(plans, func(i, j int) bool {
		if plans[i].Order != plans[j].Order {
			return plans[i].Order < plans[j].Order
		}
		return plans[i].Name < plans[j].Name
	})

	return plans, nil
}

func slugOf(file string) string {
	return strings.TrimSuffix(path.Base(file), ".md")
}
