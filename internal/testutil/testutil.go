package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Kohryu26/SoleCast/internal/middleware"
	"github.com/Kohryu26/SoleCast/internal/model/entity"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const JWTSecret = "solecast-test-jwt-secret"

// SetupTestDB 每个测试用独立的内存SQLite库，测试结束自动释放。
// cache=shared 保证同一测试内多个连接看到同一份数据。
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:test_%d?mode=memory&cache=shared&_fk=1", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get database instance: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := entity.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test tables: %v", err)
	}

	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

// SetupRouter 创建测试用gin路由
func SetupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())
	return r
}

// AuthGroup 创建带JWT中间件的测试路由组
func AuthGroup(r *gin.Engine, path string) *gin.RouterGroup {
	return r.Group(path, middleware.JWTAuth(JWTSecret))
}

// GenerateTestToken 签发测试JWT
func GenerateTestToken(userID, username, role string) string {
	now := time.Now()
	claims := middleware.JWTClaims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(24 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, _ := token.SignedString([]byte(JWTSecret))
	return tokenString
}

// AdminTestToken 默认管理员测试token
func AdminTestToken() string {
	return GenerateTestToken("test-admin-001", "admin", entity.RoleAdmin)
}

// EmployeeTestToken 默认员工测试token
func EmployeeTestToken() string {
	return GenerateTestToken("test-emp-001", "employee", entity.RoleEmployee)
}

// DoRequest 对测试路由发起HTTP请求
func DoRequest(r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ParseResponse 解析JSON响应体
func ParseResponse(w *httptest.ResponseRecorder) map[string]interface{} {
	var result map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &result)
	return result
}

// SeedMaterial 插入一条测试物料
func SeedMaterial(t *testing.T, db *gorm.DB, name string, stock int, price float64) *entity.Material {
	t.Helper()
	m := &entity.Material{
		ID:                 uuid.New().String(),
		Name:               name,
		Stock:              stock,
		Price:              price,
		ProductAssociation: "Shoe-A",
		Unit:               "pcs",
	}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("Failed to seed material: %v", err)
	}
	return m
}

// SeedBOMEntry 插入一条测试配方行
func SeedBOMEntry(t *testing.T, db *gorm.DB, productName, materialID string, qtyPerUnit int) *entity.BOMEntry {
	t.Helper()
	e := &entity.BOMEntry{
		ID:              uuid.New().String(),
		ProductName:     productName,
		MaterialID:      materialID,
		QuantityPerUnit: qtyPerUnit,
	}
	if err := db.Create(e).Error; err != nil {
		t.Fatalf("Failed to seed bom entry: %v", err)
	}
	return e
}

// SeedSalesRecord 插入一条测试销售记录
func SeedSalesRecord(t *testing.T, db *gorm.DB, product string, year, month, qty int, historical bool) *entity.SalesRecord {
	t.Helper()
	rec := &entity.SalesRecord{
		ID:          uuid.New().String(),
		ProductName: product,
		Year:        year,
		Month:       month,
		Quantity:    qty,
		Historical:  historical,
	}
	if err := db.Create(rec).Error; err != nil {
		t.Fatalf("Failed to seed sales record: %v", err)
	}
	return rec
}
