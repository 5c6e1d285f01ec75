package quote

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/orcamentos-api/internal/domain"
)

const (
	keyStraightPost   = "haste_reta"
	keyCornerPost     = "haste_canto"
	keyConcertinaRoll = "concertina_linear_20m"
	keyFenceWireRoll  = "fio_aco_500m"
	keyInsulator      = "isolador"
	keyEnergizer      = "central_choque"
	keyFenceLabor     = "mao_cerca_por_metro"
)

var (
	concertinaRollMeters = decimal.NewFromInt(20)
	fenceWireRollMeters  = decimal.NewFromInt(500)
)

// posts reparte el perímetro en vanos de espac metros: hastes = vanos + 1, de las cuales
// cantos son de canto. Más cantos que hastes es una entrada geométricamente inconsistente.
func posts(per, espac decimal.Decimal, cantos int64) (straight, total int64, err error) {
	total = CeilDiv(per, espac) + 1
	straight = total - cantos
	if straight < 0 {
		return 0, 0, domain.NewValidationError("cantos",
			fmt.Sprintf("%d cantos excede el total de %d hastes para el perímetro informado", cantos, total))
	}
	return straight, total, nil
}

// ConcertinaLinear concertina linear eletrificada sobre hastes.
type ConcertinaLinear struct{}

func (ConcertinaLinear) Descriptor() Descriptor {
	return Descriptor{Key: "concertina_linear", Label: "Concertina linear eletrificada", Module: "seguranca"}
}

func (ConcertinaLinear) Schema() []Param {
	return []Param{
		decimalParam("per", "Perímetro (m)", "1", "500", "36"),
		intParam("fios", "Qtd fios", 1, 10, 6),
		decimalParam("espac", "Espaçamento (m)", "0.5", "5", "2.5"),
		intParam("cantos", "Cantos", 1, 20, 4),
	}
}

func (ConcertinaLinear) Dependencies() Dependencies {
	return Dependencies{Keys: []string{keyStraightPost, keyCornerPost, keyConcertinaRoll}}
}

func (c ConcertinaLinear) Compute(snap Snapshot, params Params) (*Result, error) {
	p, err := ValidateParams(c.Schema(), params)
	if err != nil {
		return nil, err
	}
	per := p.Get("per")
	cantos := p.Get("cantos").IntPart()
	straight, _, err := posts(per, p.Get("espac"), cantos)
	if err != nil {
		return nil, err
	}
	meters := per.Mul(p.Get("fios"))
	rolls := CeilDiv(meters, concertinaRollMeters)

	r := newResult(c.Descriptor())
	r.Add(keyStraightPost, "Haste reta", decimal.NewFromInt(straight), snap.Price(keyStraightPost))
	r.Add(keyCornerPost, "Haste de canto", decimal.NewFromInt(cantos), snap.Price(keyCornerPost))
	r.Add(keyConcertinaRoll, "Concertina linear (20m)", decimal.NewFromInt(rolls), snap.Price(keyConcertinaRoll))
	return r, nil
}

// ElectricFence cerca elétrica perimetral: hastes, fio de aço em rolos de 500m, um isolador
// por fio em cada haste, a central de choque e a mão de obra por metro de perímetro.
type ElectricFence struct{}

func (ElectricFence) Descriptor() Descriptor {
	return Descriptor{Key: "cerca_eletrica", Label: "Cerca elétrica perimetral", Module: "seguranca"}
}

func (ElectricFence) Schema() []Param {
	return []Param{
		decimalParam("per", "Perímetro (m)", "1", "500", "50"),
		intParam("fios", "Qtd fios", 1, 12, 6),
		decimalParam("espac", "Espaçamento (m)", "0.5", "5", "2.5"),
		intParam("cantos", "Cantos", 1, 20, 4),
	}
}

func (ElectricFence) Dependencies() Dependencies {
	return Dependencies{Keys: []string{
		keyStraightPost, keyCornerPost, keyFenceWireRoll, keyInsulator, keyEnergizer, keyFenceLabor,
	}}
}

func (c ElectricFence) Compute(snap Snapshot, params Params) (*Result, error) {
	p, err := ValidateParams(c.Schema(), params)
	if err != nil {
		return nil, err
	}
	per := p.Get("per")
	fios := p.Get("fios")
	cantos := p.Get("cantos").IntPart()
	straight, total, err := posts(per, p.Get("espac"), cantos)
	if err != nil {
		return nil, err
	}
	rolls := CeilDiv(per.Mul(fios), fenceWireRollMeters)
	insulators := decimal.NewFromInt(total).Mul(fios)

	r := newResult(c.Descriptor())
	r.Add(keyStraightPost, "Haste reta", decimal.NewFromInt(straight), snap.Price(keyStraightPost))
	r.Add(keyCornerPost, "Haste de canto", decimal.NewFromInt(cantos), snap.Price(keyCornerPost))
	r.Add(keyFenceWireRoll, "Fio de aço (rolo 500m)", decimal.NewFromInt(rolls), snap.Price(keyFenceWireRoll))
	r.Add(keyInsulator, "Isolador", insulators, snap.Price(keyInsulator))
	r.Add(keyEnergizer, "Central de choque", decimal.NewFromInt(1), snap.Price(keyEnergizer))
	r.Add(keyFenceLabor, "Mão de obra (por metro)", per, snap.Price(keyFenceLabor))
	return r, nil
}
