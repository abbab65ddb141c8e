package inventory

import (
	"fmt"
	"log"

	"saha-backend/internal/audit"
	"saha-backend/internal/auth"
	"saha-backend/internal/database"
	"saha-backend/internal/models"
	"saha-backend/internal/schedule"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreateStockSnapshotRequest struct {
	StoreID   uint    `json:"store_id"`
	ProductID uint    `json:"product_id"`
	Date      string  `json:"date"` // "2025-12-09"
	Quantity  float64 `json:"quantity"`
	Note      string  `json:"note"`
	ClientKey string  `json:"client_key"` // mobil retry tekilleştirmesi için (opsiyonel)
}

type StockSnapshotResponse struct {
	ID          uint    `json:"id"`
	StoreID     uint    `json:"store_id"`
	StoreName   string  `json:"store_name"`
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	UserID      uint    `json:"user_id"`
	Date        string  `json:"date"`
	Quantity    float64 `json:"quantity"`
	Note        string  `json:"note"`
	ClientKey   string  `json:"client_key"`
	CreatedAt   string  `json:"created_at"`
}

func snapshotResponse(snap models.StockSnapshot, storeName, productName string) StockSnapshotResponse {
	return StockSnapshotResponse{
		ID:          snap.ID,
		StoreID:     snap.StoreID,
		StoreName:   storeName,
		ProductID:   snap.ProductID,
		ProductName: productName,
		UserID:      snap.UserID,
		Date:        snap.SnapshotDate.Format("2006-01-02"),
		Quantity:    snap.Quantity,
		Note:        snap.Note,
		ClientKey:   snap.ClientKey,
		CreatedAt:   snap.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// POST /api/snapshots
//
// Sayım önce kalıcılaştırılır, ziyaret/görev yansıtması sonra gelir; yansıtma
// hatası sayımı geri almaz (kanıt asıl işlemdir, tutarsızlık görünür ve
// düzeltilebilir, veri kaybı değildir).
func CreateStockSnapshotHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateStockSnapshotRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.StoreID == 0 || body.ProductID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "store_id ve product_id zorunlu")
		}
		if body.Quantity < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "quantity negatif olamaz")
		}

		date, err := schedule.ParseDate(body.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
		}

		var store models.Store
		if err := database.DB.First(&store, "id = ?", body.StoreID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Mağaza bulunamadı (ID: %d)", body.StoreID))
		}

		var product models.Product
		if err := database.DB.First(&product, "id = ?", body.ProductID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Ürün bulunamadı")
		}

		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		// Aynı client_key ile ikinci gönderim: yeni satır açma, mevcut kaydı döndür
		if body.ClientKey != "" {
			var existing models.StockSnapshot
			if err := database.DB.Where("client_key = ?", body.ClientKey).
				First(&existing).Error; err == nil {
				return c.JSON(snapshotResponse(existing, store.Name, product.Name))
			}
		}

		clientKey := body.ClientKey
		if clientKey == "" {
			clientKey = uuid.NewString()
		}

		snap := models.StockSnapshot{
			StoreID:      body.StoreID,
			ProductID:    body.ProductID,
			UserID:       userID,
			SnapshotDate: date,
			Quantity:     body.Quantity,
			Note:         body.Note,
			ClientKey:    clientKey,
		}

		if err := database.DB.Create(&snap).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Stok sayımı kaydedilemedi")
		}

		// Ziyaret kanıtı olarak işle (plansız mağazada no-op)
		if err := schedule.RecordVisitFromSnapshot(database.DB, snap.StoreID, snap.UserID, snap.SnapshotDate, snap.ID); err != nil {
			log.Printf("[WARN] sayım ziyaret kanıtı olarak işlenemedi (snapshot %d): %v", snap.ID, err)
		}

		var user models.User
		if err := database.DB.First(&user, "id = ?", userID).Error; err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    user.Name,
				EntityType:  "stock_snapshot",
				EntityID:    snap.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Stok sayımı: %s @ %s - %.2f %s", product.Name, store.Name, snap.Quantity, product.Unit),
				Before:      nil,
				After:       snap,
			})
		}

		return c.Status(fiber.StatusCreated).JSON(snapshotResponse(snap, store.Name, product.Name))
	}
}

// GET /api/snapshots?store_id=&product_id=&start=&end=
func ListStockSnapshotsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := database.DB.Preload("Store").Preload("Product")

		if s := c.Query("store_id"); s != "" {
			var id uint
			if _, err := fmt.Sscan(s, &id); err != nil || id == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "store_id geçersiz")
			}
			q = q.Where("store_id = ?", id)
		}
		if s := c.Query("product_id"); s != "" {
			var id uint
			if _, err := fmt.Sscan(s, &id); err != nil || id == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "product_id geçersiz")
			}
			q = q.Where("product_id = ?", id)
		}
		if s := c.Query("start"); s != "" {
			d, err := schedule.ParseDate(s)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "start formatı 'YYYY-MM-DD' olmalı")
			}
			q = q.Where("snapshot_date >= ?", d)
		}
		if s := c.Query("end"); s != "" {
			d, err := schedule.ParseDate(s)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "end formatı 'YYYY-MM-DD' olmalı")
			}
			q = q.Where("snapshot_date <= ?", d)
		}

		var snaps []models.StockSnapshot
		if err := q.Order("snapshot_date DESC, created_at DESC").Find(&snaps).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Stok sayımları okunamadı")
		}

		resp := make([]StockSnapshotResponse, 0, len(snaps))
		for _, snap := range snaps {
			resp = append(resp, snapshotResponse(snap, snap.Store.Name, snap.Product.Name))
		}
		return c.JSON(resp)
	}
}

// DELETE /api/snapshots/:id
//
// Geri alma ve silme aynı transaction'dadır: sayım gittikten sonra ona
// dayanan hiçbir tamamlanma "true" kalmamalı.
func DeleteStockSnapshotHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var snap models.StockSnapshot
		if err := database.DB.First(&snap, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Stok sayımı bulunamadı")
		}

		tx := database.DB.Begin()
		if tx.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İşlem başlatılamadı")
		}

		if err := schedule.ReverseSnapshot(tx, snap); err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, fmt.Sprintf("Sayıma bağlı kayıtlar geri alınamadı: %v", err))
		}

		if err := tx.Delete(&snap).Error; err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, "Stok sayımı silinemedi")
		}

		if err := tx.Commit().Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İşlem tamamlanamadı")
		}

		userID, err := auth.CurrentUserID(c)
		if err == nil {
			var user models.User
			if err := database.DB.First(&user, "id = ?", userID).Error; err == nil {
				_ = audit.WriteLog(audit.LogOptions{
					UserID:      userID,
					UserName:    user.Name,
					EntityType:  "stock_snapshot",
					EntityID:    snap.ID,
					Action:      models.AuditActionDelete,
					Description: fmt.Sprintf("Stok sayımı silindi (%s, mağaza %d)", snap.SnapshotDate.Format("2006-01-02"), snap.StoreID),
					Before:      snap,
					After:       nil,
				})
			}
		}

		return c.JSON(fiber.Map{
			"message": "Stok sayımı ve bağlı tamamlanma kayıtları geri alındı",
		})
	}
}

// GET /api/stock/current?store_id=
//
// Mağazanın güncel stok görünümü: her ürün için en son sayım esas alınır.
func CurrentStockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		s := c.Query("store_id")
		if s == "" {
			return fiber.NewError(fiber.StatusBadRequest, "store_id zorunlu")
		}
		var storeID uint
		if _, err := fmt.Sscan(s, &storeID); err != nil || storeID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "store_id geçersiz")
		}

		var store models.Store
		if err := database.DB.First(&store, "id = ?", storeID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Mağaza bulunamadı")
		}

		var snaps []models.StockSnapshot
		if err := database.DB.Preload("Product").
			Where("store_id = ?", storeID).
			Order("snapshot_date DESC, created_at DESC").
			Find(&snaps).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Stok sayımları okunamadı")
		}

		type currentStock struct {
			ProductID   uint    `json:"product_id"`
			ProductName string  `json:"product_name"`
			Unit        string  `json:"unit"`
			Quantity    float64 `json:"quantity"`
			LastCounted string  `json:"last_counted"`
		}

		seen := make(map[uint]bool)
		result := make([]currentStock, 0)
		for _, snap := range snaps {
			if seen[snap.ProductID] {
				continue
			}
			seen[snap.ProductID] = true
			result = append(result, currentStock{
				ProductID:   snap.ProductID,
				ProductName: snap.Product.Name,
				Unit:        snap.Product.Unit,
				Quantity:    snap.Quantity,
				LastCounted: snap.SnapshotDate.Format("2006-01-02"),
			})
		}

		return c.JSON(fiber.Map{
			"store_id":   store.ID,
			"store_name": store.Name,
			"stock":      result,
		})
	}
}
