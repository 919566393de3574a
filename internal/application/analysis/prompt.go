package analysis

import (
	"fmt"

	domain "ai-chart-analyst/internal/domain/analysis"
)

// BuildPrompt 組合送往視覺模型的分析指令。
// 段落編號與標籤需與本套件的解析器保持一致，改動時兩邊要同步。
func BuildPrompt(pair, timeframe string, risk domain.RiskProfile) string {
	riskNote := "Gunakan stop loss yang ketat dan target profit yang konservatif."
	if risk == domain.RiskMedium {
		riskNote = "Stop loss boleh sedikit lebih longgar dengan target profit yang lebih besar."
	}

	return fmt.Sprintf(`Anda adalah seorang analis trading profesional. Analisa chart %s pada timeframe %s berdasarkan gambar yang diberikan.

Profil risiko pengguna: %s. %s

Berikan hasil analisa dengan format PERSIS seperti berikut, tanpa markdown:

1. Trend Utama: [jelaskan arah trend saat ini]
2. Support & Resistance: [sebutkan level support dan resistance penting]
3. Pola Candlestick: [pola candlestick yang terlihat, atau "-" jika tidak ada]
4. Indikator: [pembacaan indikator yang terlihat pada chart]
5. Penjelasan Analisa & Strategi: [penjelasan naratif singkat]

Rekomendasi Entry:
Aksi: [Buy atau Sell]
Entry: [harga entry dalam angka]
Stop Loss: [harga stop loss dalam angka]
Take Profit 1: [harga take profit pertama]
Take Profit 2: [harga take profit kedua]
Take Profit 3: [harga take profit ketiga]

Semua harga wajib berupa angka. Jika suatu bagian tidak dapat ditentukan, isi dengan "-".`,
		pair, timeframe, risk, riskNote)
}
