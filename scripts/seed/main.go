package main

import (
	"fmt"
	"log"
	"time"

	"github.com/casalista/internal/config"
	"github.com/casalista/internal/db"
	"github.com/casalista/internal/service"
)

// 演示数据生成器：建管理员账号、示例房源、品牌站点，
// 并模拟最近两周的访客数据，方便本地调试仪表盘。
func main() {
	cfg := config.Load()
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatal("数据库初始化失败:", err)
	}

	fmt.Println("开始生成演示数据...")

	if err := db.EnsureUser("admin", "admin123"); err != nil {
		log.Fatal("创建管理员失败:", err)
	}

	properties := seedProperties()
	seedStorefronts()
	seedVisits(properties)

	fmt.Println("演示数据生成完成！")
	fmt.Println("管理员: admin (密码: admin123)")
}

func seedProperties() []db.Property {
	properties := []db.Property{
		{
			Title:       "Villa del Mar",
			Description: "Villa junto al mar con **piscina privada**, jardín y vistas despejadas.",
			Price:       450000, City: "Alicante", Bedrooms: 4, AreaSqm: 210,
		},
		{
			Title:       "Piso Centro Histórico",
			Description: "Piso reformado en pleno centro, a dos minutos de la plaza mayor.",
			Price:       180000, City: "Valencia", Bedrooms: 2, AreaSqm: 85,
		},
		{
			Title:       "Ático con Terraza",
			Description: "Ático luminoso con terraza de 40 m² y plaza de garaje incluida.",
			Price:       320000, City: "Málaga", Bedrooms: 3, AreaSqm: 120,
		},
		{
			Title:       "Casa de Pueblo",
			Description: "Casa tradicional para reformar, ideal como proyecto de turismo rural.",
			Price:       95000, City: "Teruel", Bedrooms: 5, AreaSqm: 260,
			Status: db.PropertyStatusDraft,
		},
	}

	for i := range properties {
		p := &properties[i]
		if p.Status == "" {
			p.Status = db.PropertyStatusPublished
		}
		p.Currency = "EUR"
		p.Slug = service.Slugify(p.Title)

		var existing db.Property
		if err := db.DB.Where("slug = ?", p.Slug).First(&existing).Error; err == nil {
			*p = existing
			continue
		}
		if err := db.DB.Create(p).Error; err != nil {
			log.Fatal("创建房源失败:", err)
		}
	}

	fmt.Printf("房源: %d 套\n", len(properties))
	return properties
}

func seedStorefronts() {
	storefronts := []db.Storefront{
		{Code: "casalista", Name: "CasaLista", Domain: "www.casalista.es", AccentColor: "#1f6f5c", Visible: true},
		{Code: "costahomes", Name: "Costa Homes", Domain: "www.costahomes.example", AccentColor: "#c0571f", Visible: true, Sort: 1},
	}

	for i := range storefronts {
		sf := &storefronts[i]
		var existing db.Storefront
		if err := db.DB.Where("code = ?", sf.Code).First(&existing).Error; err == nil {
			continue
		}
		if err := db.DB.Create(sf).Error; err != nil {
			log.Fatal("创建品牌站点失败:", err)
		}
	}

	fmt.Printf("品牌站点: %d 个\n", len(storefronts))
}

// seedVisits 模拟最近 14 天的访问：每天若干会话，
// 每个会话浏览首页和一两套房源，部分会话产生联系点击。
func seedVisits(properties []db.Property) {
	fp := service.NewFingerprinter("seed-fingerprint-secret")
	now := time.Now().UTC()

	sessions := 0
	events := 0
	for dayOffset := 13; dayOffset >= 0; dayOffset-- {
		day := now.AddDate(0, 0, -dayOffset)
		perDay := 2 + dayOffset%4

		for v := 0; v < perDay; v++ {
			ip := fmt.Sprintf("198.51.100.%d", dayOffset*16+v+1)
			ua := fmt.Sprintf("Mozilla/5.0 (X11; Linux x86_64) Gecko/20100101 Firefox/%d.0", 115+v)
			startedAt := day.Add(time.Duration(9+v) * time.Hour)
			endedAt := startedAt.Add(time.Duration(3+v) * time.Minute)

			session := db.VisitSession{
				ID:         fmt.Sprintf("seed-%d-%d", dayOffset, v),
				IPHash:     fp.HashIP(ip),
				UserAgent:  &ua,
				StartedAt:  startedAt,
				LastSeenAt: endedAt,
				EndedAt:    &endedAt,
			}
			if err := db.DB.Create(&session).Error; err != nil {
				log.Fatal("创建会话失败:", err)
			}
			sessions++

			property := properties[(dayOffset+v)%len(properties)]
			paths := []string{"/", service.PropertyPath(property.Slug)}
			for i, path := range paths {
				pageview := db.Pageview{
					SessionID:  session.ID,
					Path:       path,
					OccurredAt: startedAt.Add(time.Duration(i) * time.Minute),
				}
				if err := db.DB.Create(&pageview).Error; err != nil {
					log.Fatal("创建浏览记录失败:", err)
				}
			}

			if v%2 == 0 && property.Status == db.PropertyStatusPublished {
				event := db.TrackedEvent{
					SessionID:  &session.ID,
					EventType:  service.EventWhatsAppClick,
					PropertyID: &property.ID,
					OccurredAt: endedAt,
				}
				if err := db.DB.Create(&event).Error; err != nil {
					log.Fatal("创建事件失败:", err)
				}
				events++
			}
		}
	}

	fmt.Printf("访问会话: %d 个，转化事件: %d 次\n", sessions, events)
}
