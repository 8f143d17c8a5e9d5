package model

import (
	"errors"
	"fmt"
)

// Field names used by IBM License Service exports.
const (
	KeyProducts       = "products"
	KeyProductName    = "productName"
	KeyProductID      = "productID"
	KeyProductMetric  = "productMetric"
	KeyMetricQuantity = "metricQuantity"
	KeyClusterName    = "clusterName"
	KeyContainers     = "containers"

	KeyNamespace     = "namespace"
	KeyContainerName = "containerName"
	KeyCPULimit      = "cpuLimit"
	KeyMemoryLimit   = "memoryLimit"
)

const (
	// DefaultMetric is the metric type assumed when a product does not name one.
	// Virtual Processor Core is the unit ILMT uses for container deployments.
	DefaultMetric = "VIRTUAL_PROCESSOR_CORE"

	// Source identifies the producer of the input export in generated reports.
	Source = "IBM License Service"
)

// ErrMalformedExport is returned when the export cannot be walked as
// products with nested containers, for example when "products" is a string.
var ErrMalformedExport = errors.New("malformed license export")

// LicenseExport is a read-only view over a decoded License Service export.
type LicenseExport struct {
	products []Product
}

// Product is a read-only view over one entry of the "products" array.
type Product struct {
	Object

	containers []Container
}

// Container is a read-only view over one entry of a product's "containers" array.
type Container struct {
	Object
}

// NewLicenseExport wraps a decoded document.
// It checks only what is needed to walk the tree: "products" and every
// "containers" must be arrays of objects when present. Missing or null
// arrays are treated as empty. Field values are not validated.
func NewLicenseExport(root Object) (*LicenseExport, error) {
	if root == nil {
		root = Object{}
	}

	items, err := objectArray(root, KeyProducts)
	if err != nil {
		return nil, err
	}

	products := make([]Product, 0, len(items))
	for i, item := range items {
		containerItems, err := objectArray(item, KeyContainers)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", KeyProducts, i, err)
		}

		containers := make([]Container, 0, len(containerItems))
		for _, c := range containerItems {
			containers = append(containers, Container{Object: c})
		}
		products = append(products, Product{Object: item, containers: containers})
	}

	return &LicenseExport{products: products}, nil
}

// Products returns the products in document order.
func (e *LicenseExport) Products() []Product {
	return e.products
}

// ContainerCount returns the number of container records across all products.
func (e *LicenseExport) ContainerCount() int {
	var n int
	for _, p := range e.products {
		n += len(p.containers)
	}
	return n
}

// Containers returns the product's containers in document order.
func (p Product) Containers() []Container {
	return p.containers
}

// HasContainers reports whether the product lists at least one container.
func (p Product) HasContainers() bool {
	return len(p.containers) > 0
}

// objectArray returns o[key] as a slice of Objects.
func objectArray(o Object, key string) ([]Object, error) {
	raw := o.Get(key, nil)
	if raw == nil {
		return nil, nil
	}

	arr, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %q must be an array, got %s", ErrMalformedExport, key, TypeName(raw))
	}

	out := make([]Object, 0, len(arr))
	for i, v := range arr {
		m, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s[%d] must be an object, got %s", ErrMalformedExport, key, i, TypeName(v))
		}
		out = append(out, Object(m))
	}
	return out, nil
}
