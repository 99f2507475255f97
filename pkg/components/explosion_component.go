package components

// ExplosionComponent 一次爆炸：在同一点同时生成的一组有序粒子
//
// 粒子列表为空时，爆炸会在当帧从注册表中移除。
type ExplosionComponent struct {
	// 爆炸中心（生成时所有粒子的位置）
	X float64
	Y float64

	// Particles 按生成顺序排列的存活粒子
	Particles []*ParticleComponent
}
