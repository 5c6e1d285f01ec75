package quote

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/orcamentos-api/internal/domain"
)

const (
	keyCamera         = "cftv_camera"
	keyDVR            = "cftv_dvr"
	keyLaborPerCamera = "mao_cftv_por_camera"

	categoryCamera = "cftv_camera"
)

// CFTVInstall instalación de n cámaras con precio único: n × câmera + n × mão de obra.
type CFTVInstall struct{}

func (CFTVInstall) Descriptor() Descriptor {
	return Descriptor{Key: "cftv_install", Label: "CFTV - Instalação", Module: "seguranca"}
}

func (CFTVInstall) Schema() []Param {
	return []Param{intParam("qtd", "Quantidade de câmeras", 1, 32, 4)}
}

func (CFTVInstall) Dependencies() Dependencies {
	return Dependencies{Keys: []string{keyCamera, keyDVR, keyLaborPerCamera}}
}

func (c CFTVInstall) Compute(snap Snapshot, params Params) (*Result, error) {
	p, err := ValidateParams(c.Schema(), params)
	if err != nil {
		return nil, err
	}
	qtd := p.Get("qtd")
	r := newResult(c.Descriptor())
	r.Add(keyCamera, "Câmera", qtd, snap.Price(keyCamera))
	r.Add(keyLaborPerCamera, "Mão de obra por câmera", qtd, snap.Price(keyLaborPerCamera))
	return r, nil
}

// CFTVCameras instalación por tipo de cámara: el usuario elige SKUs de la categoría cftv_camera
// y una cantidad por SKU. Suma cada SKU más la mão de obra por el total de cámaras.
type CFTVCameras struct{}

func (CFTVCameras) Descriptor() Descriptor {
	return Descriptor{Key: "cftv_cameras", Label: "CFTV - Câmeras por modelo", Module: "seguranca"}
}

func (CFTVCameras) Schema() []Param {
	return []Param{{
		Name:     "cameras",
		Label:    "Quantidade por modelo de câmera",
		Type:     ParamSKUQuantities,
		Min:      decimal.Zero,
		Max:      decimal.NewFromInt(64),
		Default:  decimal.Zero,
		Category: categoryCamera,
	}}
}

func (CFTVCameras) Dependencies() Dependencies {
	return Dependencies{Keys: []string{keyLaborPerCamera}, Categories: []string{categoryCamera}}
}

func (c CFTVCameras) Compute(snap Snapshot, params Params) (*Result, error) {
	p, err := ValidateParams(c.Schema(), params)
	if err != nil {
		return nil, err
	}
	for key := range p {
		it, ok := snap.Item(key)
		if !ok || it.Category != categoryCamera {
			return nil, domain.NewValidationError(key, fmt.Sprintf("no es una cámara activa de la categoría %s", categoryCamera))
		}
	}

	r := newResult(c.Descriptor())
	total := decimal.Zero
	// Orden del catálogo (category, label) para que el resultado sea determinista.
	for _, it := range snap.Category(categoryCamera) {
		qty, ok := p[it.Key]
		if !ok || qty.IsZero() {
			continue
		}
		r.Add(it.Key, it.Label, qty, it.Price)
		total = total.Add(qty)
	}
	if total.IsZero() {
		return nil, domain.NewValidationError("cameras", "seleccione al menos una cámara")
	}
	r.Add(keyLaborPerCamera, "Mão de obra por câmera", total, snap.Price(keyLaborPerCamera))
	return r, nil
}
