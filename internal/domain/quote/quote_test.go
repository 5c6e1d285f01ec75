package quote_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/orcamentos-api/internal/domain"
	"github.com/jhoicas/orcamentos-api/internal/domain/entity"
	"github.com/jhoicas/orcamentos-api/internal/domain/quote"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDec(t *testing.T, want string, got decimal.Decimal, msg ...string) {
	t.Helper()
	assert.Truef(t, d(want).Equal(got), "%s esperado %s, obtenido %s", strings.Join(msg, " "), want, got)
}

func TestCeilDiv(t *testing.T) {
	tests := []struct {
		a, b string
		want int64
	}{
		{"36", "2.5", 15},
		{"216", "20", 11},
		{"40", "20", 2},
		{"10", "3", 4},
		{"0", "7", 0},
		{"123.45", "0", 0},
		{"-5", "0", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, quote.CeilDiv(d(tt.a), d(tt.b)), "%s/%s", tt.a, tt.b)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// CFTV
// ──────────────────────────────────────────────────────────────────────────────

func TestCFTVInstall_Compute(t *testing.T) {
	snap := quote.PricesSnapshot(map[string]decimal.Decimal{
		"cftv_camera":         d("115.17"),
		"mao_cftv_por_camera": d("120.0"),
	})

	res, err := quote.CFTVInstall{}.Compute(snap, quote.Params{"qtd": d("4")})
	require.NoError(t, err)

	require.Len(t, res.Lines, 2)
	for _, l := range res.Lines {
		assertDec(t, "4", l.Quantity)
	}
	assertDec(t, "460.68", res.Lines[0].Subtotal)
	assertDec(t, "480", res.Lines[1].Subtotal)
	assertDec(t, "940.68", res.Subtotal)
	assert.Equal(t, "cftv_install", res.ServiceKey)
}

func TestCFTVInstall_DefaultAndRange(t *testing.T) {
	snap := quote.PricesSnapshot(nil)

	res, err := quote.CFTVInstall{}.Compute(snap, quote.Params{})
	require.NoError(t, err)
	assertDec(t, "4", res.Lines[0].Quantity, "usa el valor por defecto")
	assertDec(t, "0", res.Subtotal, "sin precios el subtotal es cero")

	_, err = quote.CFTVInstall{}.Compute(snap, quote.Params{"qtd": d("33")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = quote.CFTVInstall{}.Compute(snap, quote.Params{"qtd": d("2.5")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "qtd debe ser entero")

	_, err = quote.CFTVInstall{}.Compute(snap, quote.Params{"qtd": d("2"), "otro": d("1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "parámetro desconocido")
}

func cameraSnapshot() quote.Snapshot {
	return quote.NewSnapshot([]*entity.CatalogItem{
		{Key: "cftv_camera_bullet_2mp", Label: "Câmera Bullet 2MP", Category: "cftv_camera", Price: d("115.17"), Active: true},
		{Key: "cftv_camera_dome_4mp", Label: "Câmera Dome 4MP", Category: "cftv_camera", Price: d("165.00"), Active: true},
		{Key: "cftv_camera_ptz", Label: "Câmera PTZ", Category: "cftv_camera", Price: d("900"), Active: false},
		{Key: "mao_cftv_por_camera", Label: "Mão de obra", Category: "mao_obra", Price: d("120"), Active: true},
	})
}

func TestCFTVCameras_Compute(t *testing.T) {
	res, err := quote.CFTVCameras{}.Compute(cameraSnapshot(), quote.Params{
		"cftv_camera_bullet_2mp": d("2"),
		"cftv_camera_dome_4mp":   d("3"),
	})
	require.NoError(t, err)

	require.Len(t, res.Lines, 3)
	assert.Equal(t, "cftv_camera_bullet_2mp", res.Lines[0].Key)
	assert.Equal(t, "cftv_camera_dome_4mp", res.Lines[1].Key)
	assert.Equal(t, "mao_cftv_por_camera", res.Lines[2].Key)
	assertDec(t, "5", res.Lines[2].Quantity, "mão de obra por el total de cámaras")
	// 2*115.17 + 3*165 + 5*120
	assertDec(t, "1325.34", res.Subtotal)
}

func TestCFTVCameras_SkipsZeroQuantities(t *testing.T) {
	res, err := quote.CFTVCameras{}.Compute(cameraSnapshot(), quote.Params{
		"cftv_camera_bullet_2mp": d("1"),
		"cftv_camera_dome_4mp":   d("0"),
	})
	require.NoError(t, err)
	require.Len(t, res.Lines, 2)
	assertDec(t, "235.17", res.Subtotal)
}

func TestCFTVCameras_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		params quote.Params
		field  string
	}{
		{"sin cámaras", quote.Params{}, "cameras"},
		{"todas en cero", quote.Params{"cftv_camera_dome_4mp": d("0")}, "cameras"},
		{"sku inactivo", quote.Params{"cftv_camera_ptz": d("1")}, "cftv_camera_ptz"},
		{"sku de otra categoría", quote.Params{"mao_cftv_por_camera": d("1")}, "mao_cftv_por_camera"},
		{"cantidad negativa", quote.Params{"cftv_camera_dome_4mp": d("-1")}, "cftv_camera_dome_4mp"},
		{"cantidad fraccionaria", quote.Params{"cftv_camera_dome_4mp": d("1.5")}, "cftv_camera_dome_4mp"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := quote.CFTVCameras{}.Compute(cameraSnapshot(), tt.params)
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Perímetro
// ──────────────────────────────────────────────────────────────────────────────

func TestConcertinaLinear_Compute(t *testing.T) {
	snap := quote.PricesSnapshot(map[string]decimal.Decimal{
		"haste_reta":            d("19.0"),
		"haste_canto":           d("50.0"),
		"concertina_linear_20m": d("53.0"),
	})
	res, err := quote.ConcertinaLinear{}.Compute(snap, quote.Params{
		"per": d("36"), "fios": d("6"), "espac": d("2.5"), "cantos": d("4"),
	})
	require.NoError(t, err)

	require.Len(t, res.Lines, 3)
	assertDec(t, "12", res.Lines[0].Quantity, "hastes retas")
	assertDec(t, "4", res.Lines[1].Quantity, "hastes de canto")
	assertDec(t, "11", res.Lines[2].Quantity, "rolos de 20m")
	assertDec(t, "1011", res.Subtotal)
}

func TestConcertinaLinear_CornersExceedPosts(t *testing.T) {
	// per=1, espac=5 → 1 vão, 2 hastes; 3 cantos es inconsistente.
	_, err := quote.ConcertinaLinear{}.Compute(quote.PricesSnapshot(nil), quote.Params{
		"per": d("1"), "fios": d("1"), "espac": d("5"), "cantos": d("3"),
	})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "cantos", ve.Field)
}

func TestConcertinaLinear_AllCornerPosts(t *testing.T) {
	res, err := quote.ConcertinaLinear{}.Compute(quote.PricesSnapshot(nil), quote.Params{
		"per": d("1"), "fios": d("1"), "espac": d("5"), "cantos": d("2"),
	})
	require.NoError(t, err)
	assertDec(t, "0", res.Lines[0].Quantity, "cero hastes retas es válido")
}

func TestElectricFence_Compute(t *testing.T) {
	snap := quote.PricesSnapshot(map[string]decimal.Decimal{
		"haste_reta":          d("19"),
		"haste_canto":         d("50"),
		"fio_aco_500m":        d("89.90"),
		"isolador":            d("0.85"),
		"central_choque":      d("389"),
		"mao_cerca_por_metro": d("12"),
	})
	res, err := quote.ElectricFence{}.Compute(snap, quote.Params{
		"per": d("50"), "fios": d("6"), "espac": d("2.5"), "cantos": d("4"),
	})
	require.NoError(t, err)

	require.Len(t, res.Lines, 6)
	assertDec(t, "17", res.Lines[0].Quantity)
	assertDec(t, "1", res.Lines[2].Quantity, "300m de fio caben en un rolo")
	assertDec(t, "126", res.Lines[3].Quantity, "21 hastes × 6 fios")
	assertDec(t, "50", res.Lines[5].Quantity)
	// 323 + 200 + 89.90 + 107.10 + 389 + 600
	assertDec(t, "1709", res.Subtotal)
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro
// ──────────────────────────────────────────────────────────────────────────────

func TestRegistry_GetAndList(t *testing.T) {
	r := quote.DefaultRegistry()

	keys := []string{}
	for _, c := range r.List() {
		keys = append(keys, c.Descriptor().Key)
	}
	assert.Equal(t, []string{"cftv_install", "cerca_eletrica", "concertina_linear", "cftv_cameras"}, keys)

	c, err := r.Get("concertina_linear")
	require.NoError(t, err)
	assert.Equal(t, "Concertina linear eletrificada", c.Descriptor().Label)

	_, err = r.Get("pintura")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegistry_DuplicateKeyPanics(t *testing.T) {
	assert.Panics(t, func() { quote.NewRegistry(quote.CFTVInstall{}, quote.CFTVInstall{}) })
}

func TestValidateParams_FillsDefaults(t *testing.T) {
	out, err := quote.ValidateParams(quote.ConcertinaLinear{}.Schema(), quote.Params{"per": d("100")})
	require.NoError(t, err)
	assertDec(t, "100", out["per"])
	assertDec(t, "6", out["fios"])
	assertDec(t, "2.5", out["espac"])
	assertDec(t, "4", out["cantos"])
}
