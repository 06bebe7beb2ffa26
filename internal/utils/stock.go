package utils

// LowStockThreshold marca desde qué cantidad un producto deja de mostrarse
// como "últimas unidades".
const LowStockThreshold = 5

type StockInfo struct {
	Status string `json:"status"`
	Label  string `json:"label"`
}

// StockStatus traduce la cantidad disponible a un estado legible para la UI.
func StockStatus(quantity int) StockInfo {
	switch {
	case quantity <= 0:
		return StockInfo{Status: "out_of_stock", Label: "Sin stock"}
	case quantity < LowStockThreshold:
		return StockInfo{Status: "low_stock", Label: "¡Últimas unidades!"}
	default:
		return StockInfo{Status: "in_stock", Label: "En stock"}
	}
}
