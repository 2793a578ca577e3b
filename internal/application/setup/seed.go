package setup

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/xiebiao/aptcare/internal/domain/apartment"
	"github.com/xiebiao/aptcare/internal/domain/checklist"
	"github.com/xiebiao/aptcare/internal/domain/inventory"
	"github.com/xiebiao/aptcare/internal/domain/user"
	"github.com/xiebiao/aptcare/internal/infrastructure/config"
)

// defaultCategories 默认物品分类
var defaultCategories = []inventory.Category{
	{Name: "Kitchen", Description: "Utensili e attrezzature da cucina"},
	{Name: "Bathroom", Description: "Articoli per il bagno"},
	{Name: "Bedroom", Description: "Biancheria e articoli per la camera"},
	{Name: "Consumables", Description: "Prodotti di consumo", IsConsumable: true},
	{Name: "Cleaning", Description: "Prodotti per la pulizia", IsConsumable: true},
}

// defaultTemplate 通用清单模板
const defaultTemplateName = "Pulizia standard"

var defaultTasks = []checklist.TaskSpec{
	{Title: "Cambiare lenzuola e asciugamani", TaskType: string(checklist.TaskCheckbox), Required: true},
	{Title: "Pulire bagno", TaskType: string(checklist.TaskCheckbox), Required: true},
	{Title: "Frigorifero vuoto e pulito?", TaskType: string(checklist.TaskYesNo), Required: true},
	{Title: "Foto del soggiorno", TaskType: string(checklist.TaskPhoto)},
	{Title: "Danni o oggetti mancanti", TaskType: string(checklist.TaskText)},
}

// sampleApartments 示例公寓
var sampleApartments = []struct{ Name, Description string }{
	{"Appartamento 1", "Piano terra, 2 camere"},
	{"Appartamento 2", "Primo piano, monolocale"},
	{"Appartamento 3", "Secondo piano, 3 camere"},
	{"Appartamento 4", "Attico, 2 camere con terrazzo"},
}

// sampleItem 每个示例公寓的库存物品
type sampleItem struct {
	Category    string
	Name        string
	Quantity    int
	MinQuantity int
	Unit        string
}

var sampleItems = []sampleItem{
	{"Kitchen", "Bicchieri", 6, 4, "pz"},
	{"Kitchen", "Piatti", 6, 4, "pz"},
	{"Kitchen", "Posate", 12, 8, "pz"},
	{"Kitchen", "Pentole", 3, 2, "pz"},
	{"Kitchen", "Caffettiera", 1, 1, "pz"},
	{"Bathroom", "Asciugamani grandi", 4, 2, "pz"},
	{"Bathroom", "Asciugamani piccoli", 4, 2, "pz"},
	{"Bathroom", "Phon", 1, 1, "pz"},
	{"Bedroom", "Lenzuola", 2, 1, "set"},
	{"Bedroom", "Cuscini", 4, 2, "pz"},
	{"Consumables", "Cialde caffè", 20, 10, "pz"},
	{"Consumables", "Carta igienica", 6, 3, "rotoli"},
	{"Consumables", "Sapone mani", 2, 1, "pz"},
	{"Cleaning", "Detersivo piatti", 1, 1, "pz"},
	{"Cleaning", "Sacchetti spazzatura", 10, 5, "pz"},
}

// SeedUseCase 初始数据
// 可重复执行，已存在的数据不会重复创建
type SeedUseCase struct {
	categoryRepo  inventory.CategoryRepository
	itemRepo      inventory.ItemRepository
	apartmentRepo apartment.Repository
	templateRepo checklist.TemplateRepository
	userRepo     user.Repository
	userService  user.Service
	cfg          config.SeedConfig
}

// NewSeedUseCase 创建初始数据用例
func NewSeedUseCase(
	categoryRepo inventory.CategoryRepository,
	itemRepo inventory.ItemRepository,
	apartmentRepo apartment.Repository,
	templateRepo checklist.TemplateRepository,
	userRepo user.Repository,
	userService user.Service,
	cfg config.SeedConfig,
) *SeedUseCase {
	return &SeedUseCase{
		categoryRepo:  categoryRepo,
		itemRepo:      itemRepo,
		apartmentRepo: apartmentRepo,
		templateRepo:  templateRepo,
		userRepo:      userRepo,
		userService:   userService,
		cfg:           cfg,
	}
}

// Execute 写入初始数据
// 1. 默认分类
// 2. 管理员（配置了用户名和密码时）
// 3. 通用清单模板
// 4. 示例公寓及其库存（sample_data开启时）
func (uc *SeedUseCase) Execute(ctx context.Context) error {
	if err := uc.seedCategories(ctx); err != nil {
		return err
	}
	if err := uc.seedManager(ctx); err != nil {
		return err
	}
	if err := uc.seedTemplate(ctx); err != nil {
		return err
	}
	if !uc.cfg.SampleData {
		return nil
	}
	return uc.seedSampleData(ctx)
}

func (uc *SeedUseCase) seedCategories(ctx context.Context) error {
	for _, c := range defaultCategories {
		_, err := uc.categoryRepo.FindByName(ctx, c.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, inventory.ErrCategoryNotFound) {
			return err
		}
		category := c
		if err := uc.categoryRepo.Create(ctx, &category); err != nil && !errors.Is(err, inventory.ErrCategoryDuplicate) {
			return err
		}
		zap.L().Info("已创建默认分类", zap.String("name", c.Name))
	}
	return nil
}

func (uc *SeedUseCase) seedManager(ctx context.Context) error {
	if uc.cfg.ManagerUsername == "" || uc.cfg.ManagerPassword == "" {
		zap.L().Warn("未配置初始管理员，跳过")
		return nil
	}

	_, err := uc.userRepo.FindByUsername(ctx, uc.cfg.ManagerUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		return err
	}

	_, err = uc.userService.CreateUser(ctx, "Manager", uc.cfg.ManagerUsername, uc.cfg.ManagerPassword, user.RoleManager)
	if err != nil && !errors.Is(err, user.ErrUsernameDuplicate) {
		return err
	}
	zap.L().Info("已创建初始管理员", zap.String("username", uc.cfg.ManagerUsername))
	return nil
}

func (uc *SeedUseCase) seedTemplate(ctx context.Context) error {
	templates, err := uc.templateRepo.List(ctx, nil)
	if err != nil {
		return err
	}
	for _, tpl := range templates {
		if tpl.IsGeneral() {
			return nil
		}
	}

	tpl, err := checklist.NewTemplate(defaultTemplateName, "Checklist generale per tutti gli appartamenti", nil, defaultTasks)
	if err != nil {
		return err
	}
	if err := uc.templateRepo.Create(ctx, tpl); err != nil {
		return err
	}
	zap.L().Info("已创建通用清单模板", zap.Uint("template_id", tpl.ID))
	return nil
}

// seedSampleData 按名称补齐示例公寓，每个公寓补齐缺少的示例物品
func (uc *SeedUseCase) seedSampleData(ctx context.Context) error {
	existing, err := uc.apartmentRepo.List(ctx)
	if err != nil {
		return err
	}
	byName := make(map[string]*apartment.Apartment, len(existing))
	for _, apt := range existing {
		byName[apt.Name] = apt
	}

	categoryIDs := make(map[string]uint)
	for _, item := range sampleItems {
		if _, ok := categoryIDs[item.Category]; ok {
			continue
		}
		category, err := uc.categoryRepo.FindByName(ctx, item.Category)
		if err != nil {
			return err
		}
		categoryIDs[item.Category] = category.ID
	}

	for _, sample := range sampleApartments {
		apt, ok := byName[sample.Name]
		if !ok {
			apt, err = apartment.NewApartment(sample.Name, "", sample.Description)
			if err != nil {
				return err
			}
			if err := uc.apartmentRepo.Create(ctx, apt); err != nil {
				return err
			}
			zap.L().Info("已创建示例公寓", zap.String("name", apt.Name))
		}
		if err := uc.seedItems(ctx, apt.ID, categoryIDs); err != nil {
			return err
		}
	}
	return nil
}

func (uc *SeedUseCase) seedItems(ctx context.Context, apartmentID uint, categoryIDs map[string]uint) error {
	items, err := uc.itemRepo.List(ctx, inventory.ListParams{ApartmentID: &apartmentID})
	if err != nil {
		return err
	}
	present := make(map[string]bool, len(items))
	for _, item := range items {
		present[item.Name] = true
	}

	created := 0
	for _, sample := range sampleItems {
		if present[sample.Name] {
			continue
		}
		item, err := inventory.NewItem(apartmentID, categoryIDs[sample.Category], sample.Name, sample.Unit, "", sample.Quantity, sample.MinQuantity)
		if err != nil {
			return err
		}
		if err := uc.itemRepo.Create(ctx, item); err != nil {
			return err
		}
		created++
	}
	if created > 0 {
		zap.L().Info("已创建示例库存", zap.Uint("apartment_id", apartmentID), zap.Int("items", created))
	}
	return nil
}
