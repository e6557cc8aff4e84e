package memory

import (
	"storefront/internal/domain/entity"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

type productSeed struct {
	ID       int64    `koanf:"id"`
	Type     string   `koanf:"type"`
	Name     string   `koanf:"name"`
	Price    float64  `koanf:"price"`
	OldPrice *float64 `koanf:"oldprice"`
	InStock  bool     `koanf:"instock"`
	ImgSrc   string   `koanf:"imgsrc"`
}

// LoadProducts reads catalog rows from a YAML file with a top-level
// "products" list, using the same column names as the products table.
func LoadProducts(path string) ([]*entity.Product, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "failed to read product seed %s", path)
	}

	var seeds []productSeed
	if err := k.Unmarshal("products", &seeds); err != nil {
		return nil, errors.Wrapf(err, "failed to decode product seed %s", path)
	}

	products := make([]*entity.Product, 0, len(seeds))
	seen := make(map[int64]struct{}, len(seeds))
	for i, s := range seeds {
		if s.ID <= 0 {
			return nil, errors.Errorf("product seed %s: entry %d has no positive id", path, i)
		}
		if _, dup := seen[s.ID]; dup {
			return nil, errors.Errorf("product seed %s: duplicate id %d", path, s.ID)
		}
		seen[s.ID] = struct{}{}

		products = append(products, &entity.Product{
			ID:       s.ID,
			Type:     s.Type,
			Name:     s.Name,
			Price:    s.Price,
			OldPrice: s.OldPrice,
			InStock:  s.InStock,
			ImgSrc:   s.ImgSrc,
		})
	}

	return products, nil
}
